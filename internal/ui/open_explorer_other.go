//go:build !windows && !darwin

package ui

import (
	"os/exec"
	"path/filepath"
)

// openInFileManager opens the directory holding path with xdg-open
func openInFileManager(path string) error {
	return exec.Command("xdg-open", filepath.Dir(path)).Start()
}

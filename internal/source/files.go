package source

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"

	"github.com/lumipallolabs/groupview/internal/logging"
)

// FileColumns are the columns of a file listing
var FileColumns = []string{"path", "dir", "name", "ext", "size", "mime"}

// FileTable is a table of files below Root
type FileTable struct {
	*Table
	Root string
}

// PathOf returns the absolute path of the file on line
func (f *FileTable) PathOf(line int) string {
	rel := f.ColumnValue(line, 0)
	if rel == "" {
		return ""
	}
	return filepath.Join(f.Root, rel)
}

// fileEntry is a temporary structure for collecting walk results
type fileEntry struct {
	rel  string
	size int64
	mime string
}

// LoadFiles lists every regular file below root using fastwalk
func LoadFiles(ctx context.Context, root string) (*FileTable, error) {
	rows, err := scanFiles(ctx, root)
	if err != nil {
		return nil, err
	}
	absRoot, _ := filepath.Abs(root)
	t := NewTable(FileColumns, rows)
	t.Name = absRoot
	return &FileTable{Table: t, Root: absRoot}, nil
}

// Reload rescans the directory, keeping current row and selection where
// those lines still exist
func (f *FileTable) Reload(ctx context.Context) error {
	rows, err := scanFiles(ctx, f.Root)
	if err != nil {
		return err
	}
	f.Replace(FileColumns, rows)
	return nil
}

func scanFiles(ctx context.Context, root string) ([][]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// Collect entries over a channel so walk callbacks never share a slice
	entryChan := make(chan fileEntry, 1024)
	var entries []fileEntry
	var entriesWg sync.WaitGroup
	entriesWg.Add(1)
	go func() {
		defer entriesWg.Done()
		for e := range entryChan {
			entries = append(entries, e)
		}
	}()

	conf := &fastwalk.Config{
		Follow: false,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			logging.Source.Debug().Err(err).Str("path", path).Msg("skipping entry")
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		var kind string
		if mt, err := mimetype.DetectFile(path); err == nil {
			kind = mt.String()
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		entryChan <- fileEntry{
			rel:  filepath.ToSlash(rel),
			size: info.Size(),
			mime: kind,
		}
		return nil
	})

	close(entryChan)
	entriesWg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	// fastwalk visits in parallel; sort for a stable line order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].rel < entries[j].rel
	})

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		dir := filepath.ToSlash(filepath.Dir(e.rel))
		name := filepath.Base(e.rel)
		rows = append(rows, []string{
			e.rel,
			dir,
			name,
			strings.TrimPrefix(filepath.Ext(name), "."),
			strconv.FormatInt(e.size, 10),
			e.mime,
		})
	}
	logging.Source.Debug().Str("root", absRoot).Int("files", len(rows)).Msg("scanned")
	return rows, nil
}

var _ Pathed = (*FileTable)(nil)

package model

import (
	"fmt"
	"strings"
)

// Align is the horizontal alignment of cell text
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// String returns the alignment name used in config files
func (a Align) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// ParseAlign accepts full names or the single-letter L/R/C codes
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "l", "left":
		return AlignLeft, nil
	case "r", "right":
		return AlignRight, nil
	case "c", "center", "centre":
		return AlignCenter, nil
	default:
		return AlignLeft, fmt.Errorf("unknown alignment %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Align) UnmarshalText(b []byte) error {
	v, err := ParseAlign(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

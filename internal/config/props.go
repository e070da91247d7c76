package config

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/lumipallolabs/groupview/internal/grouping"
	"github.com/lumipallolabs/groupview/internal/model"
)

// Compact string forms of column settings, as used on the command line:
// widths "100,40,60", aligns "LRC", extend "TFT" and expression lists
// separated by tabs or newlines.

// ParseWidths reads comma-separated widths. Non-digits are ignored and an
// empty field reads as zero, which Normalize floors.
func ParseWidths(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	fields := strings.Split(s, ",")
	out := make([]int, len(fields))
	for i, f := range fields {
		n := 0
		for _, r := range f {
			if unicode.IsDigit(r) {
				n = n*10 + int(r-'0')
			}
		}
		out[i] = n
	}
	return out
}

// FormatWidths is the inverse of ParseWidths
func FormatWidths(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

// ParseAligns reads one L, R or C per column; anything else is left
func ParseAligns(s string) []model.Align {
	out := make([]model.Align, 0, len(s))
	for _, r := range s {
		a, _ := model.ParseAlign(string(r))
		out = append(out, a)
	}
	return out
}

// FormatAligns is the inverse of ParseAligns
func FormatAligns(aligns []model.Align) string {
	var b strings.Builder
	for _, a := range aligns {
		switch a {
		case model.AlignRight:
			b.WriteByte('R')
		case model.AlignCenter:
			b.WriteByte('C')
		default:
			b.WriteByte('L')
		}
	}
	return b.String()
}

// ParseExtend reads one flag per column. T or 1 enables extension, any
// other character disables it. Columns past the end keep their setting.
func ParseExtend(s string) []bool {
	out := make([]bool, 0, len(s))
	for _, r := range s {
		out = append(out, r == 'T' || r == 't' || r == '1')
	}
	return out
}

// FormatExtend is the inverse of ParseExtend
func FormatExtend(extend []bool) string {
	var b strings.Builder
	for _, e := range extend {
		if e {
			b.WriteByte('T')
		} else {
			b.WriteByte('F')
		}
	}
	return b.String()
}

// ParseCalcs splits an expression list on tabs or line breaks. Empty
// entries keep their position.
func ParseCalcs(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", "\n")
	return strings.Split(s, "\n")
}

// FormatCalcs joins an expression list with tabs
func FormatCalcs(calcs []string) string {
	return strings.Join(calcs, "\t")
}

// column returns column i, growing the list as needed
func (c *Config) column(i int) *Column {
	for len(c.Columns) <= i {
		c.Columns = append(c.Columns, Column{})
	}
	return &c.Columns[i]
}

// SetWidths assigns widths to the leading columns
func (c *Config) SetWidths(widths []int) {
	for i, w := range widths {
		c.column(i).Width = w
	}
}

// SetAligns assigns alignments to the leading columns
func (c *Config) SetAligns(aligns []model.Align) {
	for i, a := range aligns {
		c.column(i).Align = a
	}
}

// SetExtend assigns extend flags to the leading columns
func (c *Config) SetExtend(extend []bool) {
	for i, e := range extend {
		v := e
		c.column(i).Extend = &v
	}
}

// SetExprs assigns display expressions to the leading columns
func (c *Config) SetExprs(exprs []string) {
	for i, e := range exprs {
		c.column(i).Expr = e
	}
}

// SetLevels replaces the grouping levels. Parent expressions pair with
// group expressions by position; extras are ignored.
func (c *Config) SetLevels(groups, parents []string) {
	levels := make([]grouping.Level, len(groups))
	for i, g := range groups {
		levels[i].Group = g
		if i < len(parents) {
			levels[i].Parent = parents[i]
		}
	}
	c.Levels = levels
}

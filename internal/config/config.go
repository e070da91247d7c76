package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lumipallolabs/groupview/internal/grouping"
	"github.com/lumipallolabs/groupview/internal/model"
)

// Column configures one display column
type Column struct {
	Width  int         `yaml:"width"`
	Align  model.Align `yaml:"align"`
	Expr   string      `yaml:"expr,omitempty"`
	Extend *bool       `yaml:"extend,omitempty"` // grow row height to fit; default true
}

// Extends reports whether the column's wrapped text sets the row height
func (c Column) Extends() bool {
	return c.Extend == nil || *c.Extend
}

// Config holds the outline configuration
type Config struct {
	ColumnCount int              `yaml:"column_count"`
	Columns     []Column         `yaml:"columns"`
	Prefix      string           `yaml:"column_prefix,omitempty"`
	Levels      []grouping.Level `yaml:"levels,omitempty"`
	Filter      string           `yaml:"filter,omitempty"`

	Indent       int `yaml:"indent"`
	LineSpacing  int `yaml:"line_spacing"`
	MaxRowHeight int `yaml:"max_row_height"`

	EvenBand  bool   `yaml:"even_band"`
	EvenColor string `yaml:"even_color,omitempty"`

	// ShowSelected draws rows by their selected flag and enables
	// multi-selection; otherwise only the current row is highlighted
	ShowSelected        bool `yaml:"show_selected"`
	DeselectOnNodeClick bool `yaml:"deselect_on_node_click"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a single-column configuration with no grouping
func DefaultConfig() *Config {
	return DefaultConfigFor(DefaultLimits)
}

// DefaultConfigFor returns the default configuration sized for a device
func DefaultConfigFor(l Limits) *Config {
	return &Config{
		ColumnCount:  1,
		Columns:      []Column{{Width: l.DefaultWidth}},
		Indent:       l.Indent.Default,
		LineSpacing:  l.LineSpacing.Default,
		MaxRowHeight: l.MaxRowHeight.Default,
		ShowSelected: true,
	}
}

// Validate checks settings Normalize cannot repair
func (c *Config) Validate() error {
	if c.ColumnCount < 0 {
		return fmt.Errorf("column_count must not be negative")
	}
	for i, l := range c.Levels {
		if l.Group == "" && l.Parent != "" {
			return fmt.Errorf("level %d has a parent expression but no group expression", i)
		}
	}
	return nil
}

// Normalize heals short or out-of-range settings: missing columns are padded
// with defaults, widths are floored, column 0 is left aligned and numeric
// settings are clamped. It returns true if any geometry input changed.
func (c *Config) Normalize(l Limits) bool {
	changed := false

	if c.ColumnCount < 1 {
		c.ColumnCount = 1
		changed = true
	}
	for len(c.Columns) < c.ColumnCount {
		c.Columns = append(c.Columns, Column{Width: l.DefaultWidth})
		changed = true
	}
	for i := range c.Columns {
		col := &c.Columns[i]
		if col.Width < l.MinWidth {
			col.Width = l.MinWidth
			changed = true
		}
	}
	if c.Columns[0].Align != model.AlignLeft {
		c.Columns[0].Align = model.AlignLeft
		changed = true
	}

	clamp := func(v *int, r Range) {
		if n := r.Clamp(*v); n != *v {
			*v = n
			changed = true
		}
	}
	clamp(&c.Indent, l.Indent)
	clamp(&c.LineSpacing, l.LineSpacing)
	clamp(&c.MaxRowHeight, l.MaxRowHeight)

	return changed
}

// Visible returns the columns that are displayed
func (c *Config) Visible() []Column {
	if c.ColumnCount < len(c.Columns) {
		return c.Columns[:c.ColumnCount]
	}
	return c.Columns
}

// Widths returns the displayed column widths
func (c *Config) Widths() []int {
	cols := c.Visible()
	out := make([]int, len(cols))
	for i, col := range cols {
		out[i] = col.Width
	}
	return out
}

// TotalWidth returns the sum of the displayed column widths
func (c *Config) TotalWidth() int {
	total := 0
	for _, w := range c.Widths() {
		total += w
	}
	return total
}

// Rules returns the expression texts for the grouping engine
func (c *Config) Rules() grouping.Rules {
	cols := c.Visible()
	exprs := make([]string, len(cols))
	for i, col := range cols {
		exprs[i] = col.Expr
	}
	return grouping.Rules{
		Filter:  c.Filter,
		Levels:  c.Levels,
		Columns: exprs,
		Prefix:  c.Prefix,
	}
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	out := *c
	out.Columns = make([]Column, len(c.Columns))
	for i, col := range c.Columns {
		out.Columns[i] = col
		if col.Extend != nil {
			v := *col.Extend
			out.Columns[i].Extend = &v
		}
	}
	out.Levels = append([]grouping.Level(nil), c.Levels...)
	return &out
}

package config

// Range bounds a numeric setting. Zero values take Default.
type Range struct {
	Min, Max, Default int
}

// Clamp returns v limited to the range, or Default when v is zero
func (r Range) Clamp(v int) int {
	if v == 0 {
		return r.Default
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Limits are the device-dependent bounds applied by Normalize
type Limits struct {
	MinWidth     int
	DefaultWidth int
	Indent       Range
	LineSpacing  Range
	MaxRowHeight Range
}

// DefaultLimits are pixel bounds
var DefaultLimits = Limits{
	MinWidth:     10,
	DefaultWidth: 100,
	Indent:       Range{Min: 16, Max: 100, Default: 20},
	LineSpacing:  Range{Min: 1, Max: 100, Default: 4},
	MaxRowHeight: Range{Min: 14, Max: 200, Default: 100},
}

// TerminalLimits are character-cell bounds
var TerminalLimits = Limits{
	MinWidth:     4,
	DefaultWidth: 20,
	Indent:       Range{Min: 1, Max: 8, Default: 2},
	LineSpacing:  Range{Min: 0, Max: 3, Default: 0},
	MaxRowHeight: Range{Min: 1, Max: 10, Default: 3},
}

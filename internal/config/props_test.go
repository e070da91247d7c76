package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumipallolabs/groupview/internal/model"
)

func TestParseWidths(t *testing.T) {
	assert.Equal(t, []int{100, 40, 0, 7}, ParseWidths("100, 40,,7px"))
	assert.Nil(t, ParseWidths(" "))
	assert.Equal(t, "100,40", FormatWidths([]int{100, 40}))
}

func TestParseAligns(t *testing.T) {
	aligns := ParseAligns("LRCx")
	assert.Equal(t, []model.Align{model.AlignLeft, model.AlignRight, model.AlignCenter, model.AlignLeft}, aligns)
	assert.Equal(t, "LRCL", FormatAligns(aligns))
}

func TestParseExtend(t *testing.T) {
	assert.Equal(t, []bool{true, false, false, false, true}, ParseExtend("TFxft"))
	assert.Equal(t, []bool{true, false}, ParseExtend("10"), "a 0 flag stops the column extending")
	assert.Equal(t, []bool{true, false}, ParseExtend("TF"))
	assert.Empty(t, ParseExtend(""))

	cfg := DefaultConfig()
	cfg.ColumnCount = 3
	cfg.SetExtend(ParseExtend("0"))
	cfg.Normalize(DefaultLimits)
	assert.False(t, cfg.Columns[0].Extends())
	assert.True(t, cfg.Columns[1].Extends(), "columns without a flag extend")
	assert.Equal(t, "TFT", FormatExtend([]bool{true, false, true}))
}

func TestParseCalcs(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b", "c"}, ParseCalcs("a\t\tb\r\nc"))
	assert.Nil(t, ParseCalcs(""))
	assert.Equal(t, "a\tb", FormatCalcs([]string{"a", "b"}))
}

func TestShortSettingsGrowColumns(t *testing.T) {
	cfg := &Config{ColumnCount: 1}
	cfg.SetAligns(ParseAligns("LR"))
	cfg.Normalize(DefaultLimits)

	assert.Len(t, cfg.Columns, 2)
	assert.Equal(t, DefaultLimits.MinWidth, cfg.Columns[1].Width, "settings-only columns are floored, not defaulted")
	assert.Equal(t, model.AlignRight, cfg.Columns[1].Align)
}

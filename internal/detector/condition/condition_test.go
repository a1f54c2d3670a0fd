package condition

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestNewSample(t *testing.T) {
	s, ok := NewSample(d("3"), d("1"))
	require.True(t, ok)
	assert.True(t, s.PercentChange.Equal(d("200")), s.PercentChange.String())

	s, ok = NewSample(d("0.05"), d("1"))
	require.True(t, ok)
	assert.True(t, s.PercentChange.Equal(d("-95")))

	_, ok = NewSample(d("1"), decimal.Zero)
	assert.False(t, ok)
}

func TestOpCompare(t *testing.T) {
	tests := []struct {
		op   Op
		v    string
		want bool
	}{
		{GTE, "100", true},
		{GTE, "99.99", false},
		{GT, "100", false},
		{LTE, "100", true},
		{LT, "100", false},
		{EQ, "100", true},
		{Op("!="), "100", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.Compare(d(tt.v), d("100")), "%s %s", tt.v, tt.op)
	}
}

func TestCompose(t *testing.T) {
	s, _ := NewSample(d("2"), d("1")) // +100%

	pump := PercentChange(GTE, d("100"))
	rug := PercentChange(LTE, d("-90"))
	flat := PercentChange(EQ, d("0"))

	assert.Equal(t, pump, All(pump))
	assert.True(t, pump.Match(s))
	assert.False(t, All(pump, rug).Match(s))
	assert.False(t, All().Match(s))
	assert.True(t, All(pump, Not(flat)).Match(s))
	assert.False(t, Not(pump).Match(s))

	assert.Equal(t, "(change >= 100% AND change <= -90%)", All(pump, rug).String())
	assert.Equal(t, "NOT (change == 0%)", Not(flat).String())
}

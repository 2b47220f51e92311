package normaliser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMostFrequent tests the basic majority pick.
func TestMostFrequent(t *testing.T) {
	value, ok := MostFrequent([]string{"a", "b", "a", "c", "a"})

	require.True(t, ok)
	assert.Equal(t, "a", value)
}

// TestMostFrequent_Empty tests that an empty input yields no value.
func TestMostFrequent_Empty(t *testing.T) {
	_, ok := MostFrequent(nil)
	assert.False(t, ok)
}

// TestMostFrequentWithRatio tests the agreement ratio computation.
func TestMostFrequentWithRatio(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
		ratio  float64
	}{
		{"unanimous", []string{"x", "x", "x"}, "x", 1.0},
		{"two thirds", []string{"x", "x", "y"}, "x", 2.0 / 3.0},
		{"single value", []string{"x"}, "x", 1.0},
		{"majority not first", []string{"y", "x", "x"}, "x", 2.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ratio, ok := MostFrequentWithRatio(tt.values)

			require.True(t, ok)
			assert.Equal(t, tt.want, value)
			assert.InDelta(t, tt.ratio, ratio, 1e-9)
		})
	}
}

// TestMostFrequentWithRatio_Tie tests that a frequency tie returns one
// of the tied values without crashing, and that the pick is stable.
func TestMostFrequentWithRatio_Tie(t *testing.T) {
	values := []string{"a", "b", "a", "b"}

	value, ratio, ok := MostFrequentWithRatio(values)
	require.True(t, ok)
	assert.Contains(t, []string{"a", "b"}, value)
	assert.InDelta(t, 0.5, ratio, 1e-9)

	// Same input must keep producing the same winner.
	for i := 0; i < 10; i++ {
		again, _, _ := MostFrequentWithRatio(values)
		assert.Equal(t, value, again)
	}
}

// TestMostFrequentWithRatio_TieBreakDocumented pins the documented
// tie-break: first appearance in input order.
func TestMostFrequentWithRatio_TieBreakDocumented(t *testing.T) {
	value, _, ok := MostFrequentWithRatio([]string{"b", "a", "a", "b"})

	require.True(t, ok)
	assert.Equal(t, "b", value)
}

package normaliser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestContainsMeasurement tests detection across all four pattern families.
func TestContainsMeasurement(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"temperature celsius", "出荷時156℃", true},
		{"temperature degree", "到着温度 160.4度", true},
		{"temperature with colon", "温度：158℃", true},
		{"dimension t prefix", "t=50mm", true},
		{"dimension cm", "厚さ 5cm", true},
		{"dimension metres", "幅 2.5m", true},
		{"density", "締固め度 98.5%", true},
		{"density integer", "密度 96%", true},
		{"general kg", "使用量 20kg", true},
		{"general MPa", "強度 30MPa", true},
		{"empty", "", false},
		{"plain text", "舗設状況", false},
		{"station is not a measurement", "No.10+50", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsMeasurement(tt.text))
		})
	}
}

// TestExtractMeasurements tests typed extraction with family grouping.
func TestExtractMeasurements(t *testing.T) {
	measurements := ExtractMeasurements("出荷時156℃、t=50mm")

	require.Len(t, measurements, 2)
	assert.Equal(t, Measurement{Kind: KindTemperature, Value: 156}, measurements[0])
	assert.Equal(t, Measurement{Kind: KindDimension, Value: 50, Unit: "mm"}, measurements[1])
}

// TestExtractMeasurements_Density tests density extraction.
func TestExtractMeasurements_Density(t *testing.T) {
	measurements := ExtractMeasurements("締固め度 98.5%")

	require.Len(t, measurements, 1)
	assert.Equal(t, Measurement{Kind: KindDensity, Value: 98.5}, measurements[0])
}

// TestExtractMeasurements_GeneralOnly tests the boolean-only boundary:
// a text matching only the general pattern is detected but yields no
// typed extraction.
func TestExtractMeasurements_GeneralOnly(t *testing.T) {
	text := "使用量 20kg"

	assert.True(t, ContainsMeasurement(text))
	assert.Empty(t, ExtractMeasurements(text))
}

// TestExtractMeasurements_NoneDetected tests the §8 property: no
// detection implies empty extraction.
func TestExtractMeasurements_NoneDetected(t *testing.T) {
	for _, text := range []string{"", "舗設状況", "No.10+50", "全景"} {
		assert.False(t, ContainsMeasurement(text))
		assert.Empty(t, ExtractMeasurements(text))
	}
}

// TestExtractTemperature tests first-reading extraction.
func TestExtractTemperature(t *testing.T) {
	v, ok := ExtractTemperature("出荷時156℃")
	require.True(t, ok)
	assert.InDelta(t, 156.0, v, 1e-9)

	v, ok = ExtractTemperature("温度 160.4度")
	require.True(t, ok)
	assert.InDelta(t, 160.4, v, 1e-9)

	_, ok = ExtractTemperature("測定なし")
	assert.False(t, ok)
}

// TestExtractDimensionMM tests unit conversion to millimetres.
func TestExtractDimensionMM(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"t=50mm", 50},
		{"厚さ 5cm", 50},
		{"幅 2.5m", 2500},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, ok := ExtractDimensionMM(tt.text)
			require.True(t, ok)
			assert.InDelta(t, tt.want, v, 1e-9)
		})
	}

	_, ok := ExtractDimensionMM("寸法なし")
	assert.False(t, ok)
}

// TestIsTemperaturePhoto tests keyword and reading cues.
func TestIsTemperaturePhoto(t *testing.T) {
	assert.True(t, IsTemperaturePhoto("到着温度"))
	assert.True(t, IsTemperaturePhoto("敷均し温度測定"))
	assert.True(t, IsTemperaturePhoto("出荷時 156℃"))
	assert.False(t, IsTemperaturePhoto("舗設状況"))
}

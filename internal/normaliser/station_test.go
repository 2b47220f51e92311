package normaliser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// TestNormaliseStationFormat tests the comparison-key pipeline.
func TestNormaliseStationFormat(t *testing.T) {
	tests := []struct {
		name    string
		station string
		want    string
	}{
		{"already canonical", "No.10+50", "no.10+50"},
		{"dot separator", "NO.10.50", "no.10+50"},
		{"dash separator", "no.10-50", "no.10+50"},
		{"full width", "Ｎｏ．１０＋５０", "no.10+50"},
		{"ocr letter o", "No.1O+5O", "no.10+50"},
		{"ocr letter l", "No.l0+50", "no.10+50"},
		{"integer only", "No.12", "no.12"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormaliseStationFormat(tt.station))
		})
	}
}

// TestNormaliseStationFormat_Idempotent tests the §8 property: a
// second pass never changes the key.
func TestNormaliseStationFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"No.10+50", "ＮＯ．１０＋５０", "no.10-50", "NO.10.50",
		"No.1O+5O", "測点なし", "no.3", "",
	}

	for _, s := range inputs {
		once := NormaliseStationFormat(s)
		assert.Equal(t, once, NormaliseStationFormat(once), "input %q", s)
	}
}

// TestNormaliseStationFormat_VariantsConverge tests that all notation
// variants of one logical station share one key.
func TestNormaliseStationFormat_VariantsConverge(t *testing.T) {
	variants := []string{"No.10+50", "ＮＯ．１０＋５０", "no.10-50", "NO.10.50"}

	for _, v := range variants {
		assert.Equal(t, "no.10+50", NormaliseStationFormat(v), "variant %q", v)
	}
}

// TestFixOCRDigits tests digit-context letter repair.
func TestFixOCRDigits(t *testing.T) {
	assert.Equal(t, "no.10+50", fixOCRDigits("no.1O+5O"))
	assert.Equal(t, "no.10+50", fixOCRDigits("no.l0+50"))

	// Letters not adjacent to a digit stay untouched.
	assert.Equal(t, "hello world", fixOCRDigits("hello world"))
	assert.Equal(t, "control", fixOCRDigits("control"))
}

// TestDetectStationPattern tests notation family detection priority.
func TestDetectStationPattern(t *testing.T) {
	tests := []struct {
		name    string
		station string
		want    StationPattern
		found   bool
	}{
		{"plus", "No.10+50", StationPattern{StationPlus, 10, 50}, true},
		{"dot", "No.10.50", StationPattern{StationDot, 10, 50}, true},
		{"dash", "No.10-50", StationPattern{StationDash, 10, 50}, true},
		{"integer", "No.10", StationPattern{StationInteger, 10, 0}, true},
		{"lower case", "no.3+25", StationPattern{StationPlus, 3, 25}, true},
		{"no match", "起点側", StationPattern{}, false},
		{"empty", "", StationPattern{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := DetectStationPattern(tt.station)

			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestNormaliseStations tests the end-to-end consensus case: two
// canonical spellings and one dot variant at threshold 0.6 yield
// exactly one correction.
func TestNormaliseStations(t *testing.T) {
	batch := []domain.AnalysisResult{
		{FileName: "photo1.jpg", Station: "No.10+50"},
		{FileName: "photo2.jpg", Station: "No.10+50"},
		{FileName: "photo3.jpg", Station: "No.10.50"},
	}

	corrections := NormaliseStations(batch, 0.6, nil)

	require.Len(t, corrections, 1)
	assert.Equal(t, "photo3.jpg", corrections[0].FileName)
	assert.Equal(t, domain.FieldStation, corrections[0].Field)
	assert.Equal(t, "No.10.50", corrections[0].Original)
	assert.Equal(t, "No.10+50", corrections[0].Corrected)
	assert.Contains(t, corrections[0].Reason, "No.10+50")
	assert.Contains(t, corrections[0].Reason, "No.10.50")
}

// TestNormaliseStations_BelowThreshold tests that weak agreement
// imposes nothing.
func TestNormaliseStations_BelowThreshold(t *testing.T) {
	batch := []domain.AnalysisResult{
		{FileName: "a.jpg", Station: "No.10+50"},
		{FileName: "b.jpg", Station: "No.20+00"},
		{FileName: "c.jpg", Station: "No.30+00"},
	}

	assert.Empty(t, NormaliseStations(batch, 0.6, nil))
}

// TestNormaliseStations_EmptyAbstain tests that empty stations neither
// vote nor get corrected.
func TestNormaliseStations_EmptyAbstain(t *testing.T) {
	batch := []domain.AnalysisResult{
		{FileName: "a.jpg", Station: "No.10+50"},
		{FileName: "b.jpg", Station: ""},
		{FileName: "c.jpg", Station: "No.10.50"},
	}

	corrections := NormaliseStations(batch, 0.6, nil)

	require.Len(t, corrections, 1)
	assert.Equal(t, "c.jpg", corrections[0].FileName)
}

// TestNormaliseStations_AllEmpty tests an all-empty field batch.
func TestNormaliseStations_AllEmpty(t *testing.T) {
	batch := []domain.AnalysisResult{
		{FileName: "a.jpg"},
		{FileName: "b.jpg"},
	}

	assert.Empty(t, NormaliseStations(batch, 0.6, nil))
}

// TestNormaliseStations_ProtectedSkipped tests that a protected record
// still votes but is never a target.
func TestNormaliseStations_ProtectedSkipped(t *testing.T) {
	batch := []domain.AnalysisResult{
		{FileName: "a.jpg", Station: "No.10+50"},
		{FileName: "b.jpg", Station: "No.10+50"},
		{FileName: "c.jpg", Station: "No.10.50"},
	}
	protected := map[string]struct{}{"c.jpg": {}}

	assert.Empty(t, NormaliseStations(batch, 0.6, protected))
}

// TestNormaliseStations_CaseInsensitiveTarget tests that a spelling
// differing only by case from the target is left alone.
func TestNormaliseStations_CaseInsensitiveTarget(t *testing.T) {
	batch := []domain.AnalysisResult{
		{FileName: "a.jpg", Station: "No.10+50"},
		{FileName: "b.jpg", Station: "no.10+50"},
		{FileName: "c.jpg", Station: "No.10+50"},
	}

	assert.Empty(t, NormaliseStations(batch, 0.6, nil))
}

// TestNormaliseStations_DisplayValueIsOriginal tests that the imposed
// value is the first original spelling of the majority key, not the
// canonical key itself.
func TestNormaliseStations_DisplayValueIsOriginal(t *testing.T) {
	batch := []domain.AnalysisResult{
		{FileName: "a.jpg", Station: "ＮＯ．１０＋５０"},
		{FileName: "b.jpg", Station: "No.10.50"},
		{FileName: "c.jpg", Station: "No.10-50"},
	}

	corrections := NormaliseStations(batch, 0.6, nil)

	// All three share the key "no.10+50"; the display target is the
	// first original in batch order.
	require.Len(t, corrections, 2)
	for _, c := range corrections {
		assert.Equal(t, "ＮＯ．１０＋５０", c.Corrected)
	}
}

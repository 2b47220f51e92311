package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// TestWriteCorrections tests the table plus summary output.
func TestWriteCorrections(t *testing.T) {
	result := &domain.NormalisationResult{
		Corrections: []domain.NormalisationCorrection{
			{
				FileName:  "photo3.jpg",
				Field:     domain.FieldStation,
				Original:  "NO.10+50",
				Corrected: "No.10+50",
				Reason:    "最頻出測点「No.10+50」に統一（元: NO.10+50）",
			},
		},
		Stats: domain.NormalisationStats{
			TotalRecords:       3,
			CorrectedRecords:   1,
			StationCorrections: 1,
		},
	}

	var buf bytes.Buffer
	WriteCorrections(&buf, result)

	out := buf.String()
	assert.Contains(t, out, "photo3.jpg")
	assert.Contains(t, out, "測点")
	assert.Contains(t, out, "NO.10+50")
	assert.Contains(t, out, "No.10+50")
	assert.Contains(t, out, "3件中1件を補正")
}

// TestWriteCorrections_NoCorrections tests that a clean batch prints
// only the summary line.
func TestWriteCorrections_NoCorrections(t *testing.T) {
	result := &domain.NormalisationResult{
		Stats: domain.NormalisationStats{TotalRecords: 5},
	}

	var buf bytes.Buffer
	WriteCorrections(&buf, result)

	assert.Equal(t, "5件中0件を補正（測点: 0, 分類: 0, 測定値保護: 0）\n", buf.String())
}

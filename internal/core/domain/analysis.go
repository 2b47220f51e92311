package domain

import "strings"

// AnalysisResult is one per-photograph record produced by the upstream
// AI/OCR analysis stage. All text fields are free text and may be empty;
// FileName is the record key within a batch.
type AnalysisResult struct {
	// FileName is the photograph's file name, unique within a batch.
	FileName string `json:"fileName"`

	// WorkType is the top classification level (工種).
	WorkType string `json:"workType"`

	// Variety is the middle classification level (種別).
	Variety string `json:"variety"`

	// Detail is the bottom classification level (細別).
	Detail string `json:"detail"`

	// Station is the free-text survey station marker (測点), e.g. "No.10+50".
	Station string `json:"station"`

	// Remarks is free-text remarks (備考), possibly carrying measurement readings.
	Remarks string `json:"remarks"`

	// Description is the photograph description (写真説明).
	Description string `json:"description"`

	// HasBoard reports whether a site blackboard was detected in the photo.
	HasBoard bool `json:"hasBoard"`

	// DetectedText is the raw OCR text read from the photo.
	DetectedText string `json:"detectedText"`

	// Measurements is free text with numeric readings (温度, 寸法, 密度).
	Measurements string `json:"measurements"`

	// PhotoCategory is the album photo category (写真区分).
	PhotoCategory string `json:"photoCategory"`

	// Reasoning is the analysis stage's classification rationale.
	Reasoning string `json:"reasoning"`
}

// EmptyStationIndices returns the batch indices of records whose station
// is empty or whitespace-only, in batch order.
func EmptyStationIndices(batch []AnalysisResult) []int {
	var indices []int
	for i := range batch {
		if strings.TrimSpace(batch[i].Station) == "" {
			indices = append(indices, i)
		}
	}
	return indices
}

// CollectStations returns the distinct non-empty station values in the
// batch, first-appearance order preserved.
func CollectStations(batch []AnalysisResult) []string {
	seen := make(map[string]struct{})
	var stations []string
	for i := range batch {
		s := strings.TrimSpace(batch[i].Station)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		stations = append(stations, s)
	}
	return stations
}

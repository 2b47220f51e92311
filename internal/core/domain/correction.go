package domain

// CorrectionField identifies which AnalysisResult field a correction targets.
type CorrectionField string

// Correction target fields.
const (
	FieldStation  CorrectionField = "station"
	FieldWorkType CorrectionField = "work_type"
	FieldVariety  CorrectionField = "variety"
	FieldDetail   CorrectionField = "detail"
	FieldRemarks  CorrectionField = "remarks"
)

// Label returns the Japanese display name used in correction reasons
// and reports.
func (f CorrectionField) Label() string {
	switch f {
	case FieldStation:
		return "測点"
	case FieldWorkType:
		return "工種"
	case FieldVariety:
		return "種別"
	case FieldDetail:
		return "細別"
	case FieldRemarks:
		return "備考"
	default:
		return string(f)
	}
}

// IsCategorical reports whether the field is one of the three nested
// work-classification levels.
func (f CorrectionField) IsCategorical() bool {
	return f == FieldWorkType || f == FieldVariety || f == FieldDetail
}

// NormalisationCorrection is an immutable proposal to rewrite one field
// of one record. It is produced by the consensus engine and only takes
// effect when applied back onto the batch.
type NormalisationCorrection struct {
	// FileName names the target record.
	FileName string `json:"fileName"`

	// Field is the record field the correction targets.
	Field CorrectionField `json:"field"`

	// Original is the field value before correction.
	Original string `json:"original"`

	// Corrected is the proposed replacement value.
	Corrected string `json:"corrected"`

	// Reason is a human-readable justification.
	Reason string `json:"reason"`
}

// NormalisationStats aggregates counters for one normalisation run.
// Recomputed each run, never persisted on its own.
type NormalisationStats struct {
	// TotalRecords is the number of records in the batch.
	TotalRecords int `json:"totalRecords"`

	// CorrectedRecords is the distinct count of file names with at
	// least one correction.
	CorrectedRecords int `json:"correctedRecords"`

	// StationCorrections counts station-field corrections.
	StationCorrections int `json:"stationCorrections"`

	// WorkTypeCorrections counts corrections across the three
	// classification fields.
	WorkTypeCorrections int `json:"workTypeCorrections"`

	// SkippedMeasurements counts records excluded as correction
	// targets because their text carries a protected measurement.
	SkippedMeasurements int `json:"skippedMeasurements"`
}

// NormalisationResult is the output of one normalisation run.
type NormalisationResult struct {
	// Corrections are the proposed corrections: station first, then
	// work type, variety and detail, batch order within each field.
	Corrections []NormalisationCorrection `json:"corrections"`

	// Stats are the aggregate counters for the run.
	Stats NormalisationStats `json:"stats"`
}

// NormalisationOptions configures a normalisation run.
type NormalisationOptions struct {
	// NormaliseStation enables station consensus.
	NormaliseStation bool `json:"normaliseStation"`

	// NormaliseWorkType enables consensus over the three
	// classification fields.
	NormaliseWorkType bool `json:"normaliseWorkType"`

	// Threshold is the minimum agreement ratio (0.0..=1.0) required
	// before minority values are aligned to the majority.
	Threshold float64 `json:"threshold"`

	// ProtectMeasurements excludes records whose remarks or
	// measurements text carries a numeric reading from being
	// correction targets.
	ProtectMeasurements bool `json:"protectMeasurements"`
}

// DefaultNormalisationOptions returns the standard configuration:
// both consensus passes on, threshold 0.6, measurement protection on.
func DefaultNormalisationOptions() NormalisationOptions {
	return NormalisationOptions{
		NormaliseStation:    true,
		NormaliseWorkType:   true,
		Threshold:           0.6,
		ProtectMeasurements: true,
	}
}

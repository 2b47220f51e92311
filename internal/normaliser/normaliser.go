package normaliser

import (
	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// ProtectedFiles returns the set of file names whose remarks or
// measurements text carries a numeric reading. Those records are
// record-specific ground truth: they still vote in every consensus,
// but no correction may target them.
func ProtectedFiles(batch []domain.AnalysisResult) map[string]struct{} {
	protected := make(map[string]struct{})
	for i := range batch {
		if ContainsMeasurement(batch[i].Remarks) || ContainsMeasurement(batch[i].Measurements) {
			protected[batch[i].FileName] = struct{}{}
		}
	}
	return protected
}

// NormaliseResults runs the full consensus pass over a batch and
// returns the proposed corrections with aggregate statistics. The batch
// is only read; corrections take effect via ApplyCorrections once the
// caller approves them. Order: station corrections first, then work
// type, variety and detail, batch order within each field.
func NormaliseResults(batch []domain.AnalysisResult, opts domain.NormalisationOptions) domain.NormalisationResult {
	protected := map[string]struct{}{}
	if opts.ProtectMeasurements {
		protected = ProtectedFiles(batch)
	}

	var corrections []domain.NormalisationCorrection
	if opts.NormaliseStation {
		corrections = append(corrections, NormaliseStations(batch, opts.Threshold, protected)...)
	}
	if opts.NormaliseWorkType {
		corrections = append(corrections, NormaliseCategories(batch, opts.Threshold, protected)...)
	}

	stats := domain.NormalisationStats{
		TotalRecords:        len(batch),
		SkippedMeasurements: len(protected),
	}

	files := make(map[string]struct{}, len(corrections))
	for _, c := range corrections {
		files[c.FileName] = struct{}{}
		switch {
		case c.Field == domain.FieldStation:
			stats.StationCorrections++
		case c.Field.IsCategorical():
			stats.WorkTypeCorrections++
		}
	}
	stats.CorrectedRecords = len(files)

	return domain.NormalisationResult{Corrections: corrections, Stats: stats}
}

// ApplyCorrections applies an approved correction list onto the batch,
// in place. Each correction overwrites exactly the one field it names
// on the first record matching its file name; a file name absent from
// the batch is a silent no-op, as this is a best-effort cleanup pass.
func ApplyCorrections(batch []domain.AnalysisResult, corrections []domain.NormalisationCorrection) {
	for _, c := range corrections {
		for i := range batch {
			if batch[i].FileName != c.FileName {
				continue
			}

			switch c.Field {
			case domain.FieldStation:
				batch[i].Station = c.Corrected
			case domain.FieldWorkType:
				batch[i].WorkType = c.Corrected
			case domain.FieldVariety:
				batch[i].Variety = c.Corrected
			case domain.FieldDetail:
				batch[i].Detail = c.Corrected
			case domain.FieldRemarks:
				batch[i].Remarks = c.Corrected
			}
			break
		}
	}
}

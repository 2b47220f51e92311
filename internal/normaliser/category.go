package normaliser

import (
	"fmt"
	"strings"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// NormaliseCategories aligns the three classification fields to their
// batch majorities, independently and in order: work type, then
// variety, then detail. Comparison is exact; whether two spellings are
// "the same" is decided only by the vote, never by fuzzy distance.
func NormaliseCategories(batch []domain.AnalysisResult, threshold float64, protected map[string]struct{}) []domain.NormalisationCorrection {
	var corrections []domain.NormalisationCorrection

	corrections = append(corrections, normaliseField(batch, threshold, protected,
		func(r *domain.AnalysisResult) string { return r.WorkType }, domain.FieldWorkType)...)

	corrections = append(corrections, normaliseField(batch, threshold, protected,
		func(r *domain.AnalysisResult) string { return r.Variety }, domain.FieldVariety)...)

	corrections = append(corrections, normaliseField(batch, threshold, protected,
		func(r *domain.AnalysisResult) string { return r.Detail }, domain.FieldDetail)...)

	return corrections
}

// normaliseField runs the majority vote for one field. Empty values
// abstain from the vote and are never corrected; protected files vote
// but are never targets.
func normaliseField(
	batch []domain.AnalysisResult,
	threshold float64,
	protected map[string]struct{},
	value func(*domain.AnalysisResult) string,
	field domain.CorrectionField,
) []domain.NormalisationCorrection {
	var values []string
	for i := range batch {
		if v := value(&batch[i]); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil
	}

	majority, ratio, ok := MostFrequentWithRatio(values)
	if !ok || ratio < threshold {
		return nil
	}

	var corrections []domain.NormalisationCorrection
	for i := range batch {
		v := value(&batch[i])
		if v == "" {
			continue
		}
		if _, skip := protected[batch[i].FileName]; skip {
			continue
		}
		if v == majority {
			continue
		}

		corrections = append(corrections, domain.NormalisationCorrection{
			FileName:  batch[i].FileName,
			Field:     field,
			Original:  v,
			Corrected: majority,
			Reason:    fmt.Sprintf("最頻出の%s「%s」に統一（元: %s）", field.Label(), majority, v),
		})
	}

	return corrections
}

// NormaliseWorkTypeName canonicalises the whitespace of a work-type
// name: full-width spaces to ASCII, trimmed, runs collapsed to one.
func NormaliseWorkTypeName(name string) string {
	s := strings.ReplaceAll(name, "　", " ")
	s = strings.TrimSpace(s)
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

// Similarity scores how alike two strings are, in [0,1]: 1 for equal
// strings, 0 when exactly one is empty, otherwise 1 minus the edit
// distance over the longer rune length. It is a supporting primitive
// for near-duplicate inspection; the consensus paths deliberately do
// not consult it.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	aLen := len([]rune(a))
	bLen := len([]rune(b))
	maxLen := aLen
	if bLen > maxLen {
		maxLen = bLen
	}

	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance over Unicode scalar values, so
// a multi-byte character counts as a single edit unit.
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}

			d := prev[j] + 1 // deletion
			if ins := curr[j-1] + 1; ins < d {
				d = ins // insertion
			}
			if sub := prev[j-1] + cost; sub < d {
				d = sub // substitution
			}
			curr[j] = d
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}

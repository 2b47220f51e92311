package normaliser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// separatorRe rewrites "no.<digits><dot-or-dash><digits>" to the
// canonical "+" separator. Runs after width folding and lowercasing.
var separatorRe = regexp.MustCompile(`no\.(\d+)[.\-](\d+)`)

// NormaliseStationFormat converts a station string into its comparison
// key. Steps run in a fixed order, each assuming the previous:
//
//  1. full-width digits, Latin letters and ＋．－　 to ASCII
//  2. lowercase
//  3. OCR letter/digit repair (o→0, l/i→1 next to a digit)
//  4. separator unification (no.X.XX / no.X-XX → no.X+XX)
//
// The key is only ever compared, never displayed; corrected values are
// always one of the batch's original strings.
func NormaliseStationFormat(station string) string {
	s := foldWidth(station)
	s = strings.ToLower(s)
	s = fixOCRDigits(s)
	return separatorRe.ReplaceAllString(s, "no.${1}+${2}")
}

// foldWidth transliterates full-width digits, Latin letters and the
// four station symbols to ASCII. Everything else, including kana and
// kanji, passes through untouched.
func foldWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '０' && r <= '９':
			r = r - '０' + '0'
		case r >= 'Ａ' && r <= 'Ｚ':
			r = r - 'Ａ' + 'A'
		case r >= 'ａ' && r <= 'ｚ':
			r = r - 'ａ' + 'a'
		case r == '＋':
			r = '+'
		case r == '．':
			r = '.'
		case r == '－':
			r = '-'
		case r == '　':
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fixOCRDigits rewrites o/O to 0 and l/I to 1 when the neighbouring
// character is an ASCII digit. Characters not adjacent to a digit are
// left alone so ordinary words are not corrupted.
func fixOCRDigits(s string) string {
	src := []rune(s)
	out := make([]rune, len(src))
	copy(out, src)

	// Adjacency is judged against the input, not already-repaired runes.
	for i, r := range src {
		prevDigit := i > 0 && isASCIIDigit(src[i-1])
		nextDigit := i+1 < len(src) && isASCIIDigit(src[i+1])
		if !prevDigit && !nextDigit {
			continue
		}

		switch r {
		case 'o', 'O':
			out[i] = '0'
		case 'l', 'I':
			out[i] = '1'
		}
	}
	return string(out)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// StationPatternKind is the notation family of a station string.
type StationPatternKind int

// Station notation families, in detection priority order.
const (
	// StationPlus is "No.X+XX".
	StationPlus StationPatternKind = iota

	// StationDot is "No.X.XX".
	StationDot

	// StationDash is "No.X-XX".
	StationDash

	// StationInteger is "No.X" with no fractional part.
	StationInteger
)

// StationPattern is a recognised station notation with its parsed
// integer components. Minor is zero for StationInteger.
type StationPattern struct {
	// Kind is the notation family.
	Kind StationPatternKind

	// Major is the station number before the separator.
	Major int

	// Minor is the chainage after the separator.
	Minor int
}

// Station pattern matchers, tried in priority order.
var (
	stationPlusRe = regexp.MustCompile(`(?i)no\.?\s*(\d+)\+(\d+)`)
	stationDotRe  = regexp.MustCompile(`(?i)no\.?\s*(\d+)\.(\d+)`)
	stationDashRe = regexp.MustCompile(`(?i)no\.?\s*(\d+)-(\d+)`)
	stationIntRe  = regexp.MustCompile(`(?i)no\.?\s*(\d+)$`)
)

// DetectStationPattern recognises the notation family of a station
// string, case-insensitively, in priority order Plus, Dot, Dash,
// Integer. The second return is false when no family matches.
func DetectStationPattern(station string) (StationPattern, bool) {
	type matcher struct {
		re   *regexp.Regexp
		kind StationPatternKind
	}
	matchers := []matcher{
		{stationPlusRe, StationPlus},
		{stationDotRe, StationDot},
		{stationDashRe, StationDash},
	}

	for _, m := range matchers {
		if caps := m.re.FindStringSubmatch(station); caps != nil {
			return StationPattern{
				Kind:  m.kind,
				Major: parseIntDefault(caps[1]),
				Minor: parseIntDefault(caps[2]),
			}, true
		}
	}

	if caps := stationIntRe.FindStringSubmatch(station); caps != nil {
		return StationPattern{Kind: StationInteger, Major: parseIntDefault(caps[1])}, true
	}

	return StationPattern{}, false
}

func parseIntDefault(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// NormaliseStations aligns minority station notations to the batch's
// dominant one. Records vote with their comparison key; when the
// majority key's share clears threshold, every record whose original
// text differs (case-insensitively) from the dominant original spelling
// gets a correction. Empty stations abstain and are never targets;
// protected files vote but are never targets.
func NormaliseStations(batch []domain.AnalysisResult, threshold float64, protected map[string]struct{}) []domain.NormalisationCorrection {
	type keyed struct {
		record *domain.AnalysisResult
		key    string
	}

	var stations []keyed
	for i := range batch {
		if batch[i].Station == "" {
			continue
		}
		stations = append(stations, keyed{&batch[i], NormaliseStationFormat(batch[i].Station)})
	}
	if len(stations) == 0 {
		return nil
	}

	keys := make([]string, len(stations))
	for i, s := range stations {
		keys[i] = s.key
	}

	majorityKey, ratio, ok := MostFrequentWithRatio(keys)
	if !ok || ratio < threshold {
		return nil
	}

	// Display value: the first original spelling carrying the majority key.
	target := majorityKey
	for _, s := range stations {
		if s.key == majorityKey {
			target = s.record.Station
			break
		}
	}

	var corrections []domain.NormalisationCorrection
	for _, s := range stations {
		if _, skip := protected[s.record.FileName]; skip {
			continue
		}
		if strings.EqualFold(s.record.Station, target) {
			continue
		}

		corrections = append(corrections, domain.NormalisationCorrection{
			FileName:  s.record.FileName,
			Field:     domain.FieldStation,
			Original:  s.record.Station,
			Corrected: target,
			Reason:    fmt.Sprintf("最頻出測点「%s」に統一（元: %s）", target, s.record.Station),
		})
	}

	return corrections
}

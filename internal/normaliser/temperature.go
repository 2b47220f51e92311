package normaliser

import (
	"strconv"
	"strings"
)

// TemperatureType classifies which asphalt temperature a reading refers
// to. Each type owns a plausible inclusive range in °C; readings outside
// the range are suspect OCR output.
type TemperatureType int

// Temperature measurement types.
const (
	// TempUnknown is used when the kind cannot be determined from text.
	TempUnknown TemperatureType = iota

	// TempArrival is the mixture temperature on arrival (到着温度).
	TempArrival

	// TempSpreading is the spreading temperature (敷均し温度).
	TempSpreading

	// TempInitialCompaction is the initial compaction temperature (初期締固め温度).
	TempInitialCompaction

	// TempOpening is the road-opening temperature (開放温度).
	TempOpening
)

// String returns the Japanese name of the temperature type.
func (t TemperatureType) String() string {
	switch t {
	case TempArrival:
		return "到着温度"
	case TempSpreading:
		return "敷均し温度"
	case TempInitialCompaction:
		return "初期締固め温度"
	case TempOpening:
		return "開放温度"
	default:
		return "不明"
	}
}

// Range returns the inclusive plausible range in °C. TempUnknown gets
// the union of all ranges, deliberately permissive.
func (t TemperatureType) Range() (min, max float64) {
	switch t {
	case TempArrival:
		return 140, 185
	case TempSpreading:
		return 130, 175
	case TempInitialCompaction:
		return 120, 165
	case TempOpening:
		return 30, 70
	default:
		return 30, 185
	}
}

// temperatureCues maps keyword cues to temperature types. Checked in
// order; the first cue contained in the text wins.
var temperatureCues = []struct {
	keyword string
	kind    TemperatureType
}{
	{"到着", TempArrival},
	{"出荷", TempArrival},
	{"敷均し", TempSpreading},
	{"敷き均し", TempSpreading},
	{"舗設", TempSpreading},
	{"初期締固め", TempInitialCompaction},
	{"初転圧", TempInitialCompaction},
	{"開放", TempOpening},
}

// TemperatureTypeFromText classifies text into a temperature type by
// ordered keyword containment. No cue yields TempUnknown.
func TemperatureTypeFromText(text string) TemperatureType {
	for _, cue := range temperatureCues {
		if strings.Contains(text, cue.keyword) {
			return cue.kind
		}
	}
	return TempUnknown
}

// IsValidTemperature reports whether value lies inside the plausible
// range of the given temperature type, inclusive.
func IsValidTemperature(kind TemperatureType, value float64) bool {
	min, max := kind.Range()
	return value >= min && value <= max
}

// ValidateTemperature extracts the first temperature reading in text
// and, when it is implausible, proposes a corrected text. The only
// repair attempted is re-inserting a decimal point the OCR dropped from
// an opening temperature: a three-digit integer reading gets a decimal
// point after the first digit, then after the second, and the first
// candidate inside the opening range wins, formatted with the original
// degree suffix. Every other case returns ok=false: no reading, a
// reading that is already valid, or an invalid reading with no safe
// repair. Returning no correction is the contract there, not a failure.
func ValidateTemperature(text string, kind TemperatureType) (corrected string, ok bool) {
	m := tempSuffixRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	raw, suffix := m[1], m[2]
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}

	if IsValidTemperature(kind, value) {
		return "", false
	}

	if kind != TempOpening {
		return "", false
	}

	// Suspected missing decimal point: exactly three digits, no dot.
	if strings.Contains(raw, ".") || len(raw) != 3 || value < 100 || value >= 1000 {
		return "", false
	}

	for _, cut := range []int{1, 2} {
		candidate := raw[:cut] + "." + raw[cut:]
		v, err := strconv.ParseFloat(candidate, 64)
		if err != nil {
			continue
		}
		if IsValidTemperature(TempOpening, v) {
			return candidate + suffix, true
		}
	}

	return "", false
}

package normaliser

import (
	"regexp"
	"strconv"
)

// MeasurementKind is the category of a numeric reading found in text.
type MeasurementKind int

// Measurement kinds.
const (
	// KindTemperature is a reading in ℃ or 度.
	KindTemperature MeasurementKind = iota

	// KindDimension is a length reading in mm, cm or m.
	KindDimension

	// KindDensity is a percentage reading.
	KindDensity
)

// Measurement is a typed numeric reading extracted from free text.
type Measurement struct {
	// Kind categorises the reading.
	Kind MeasurementKind

	// Value is the parsed numeric value.
	Value float64

	// Unit is the length unit for dimensions ("mm", "cm" or "m");
	// empty for other kinds.
	Unit string
}

// Static measurement patterns. The general pattern backs the boolean
// detector only; it has no typed extraction.
var (
	tempRe       = regexp.MustCompile(`(\d+\.?\d*)\s*[℃度]`)
	tempSuffixRe = regexp.MustCompile(`(\d+\.?\d*)\s*([℃度])`)
	dimRe        = regexp.MustCompile(`[t=]?\s*(\d+\.?\d*)\s*(mm|cm|m)\b`)
	densityRe    = regexp.MustCompile(`(\d+\.?\d*)\s*%`)
	generalRe    = regexp.MustCompile(`\d+\.?\d*\s*(kg|g|L|kN|MPa)`)
)

// ContainsMeasurement reports whether text carries any numeric reading:
// temperature, dimension, density, or a general numeric-unit pattern.
// Records matching this are protected from automatic correction.
func ContainsMeasurement(text string) bool {
	if text == "" {
		return false
	}

	return tempRe.MatchString(text) ||
		dimRe.MatchString(text) ||
		densityRe.MatchString(text) ||
		generalRe.MatchString(text)
}

// ExtractMeasurements returns the typed readings found in text, grouped
// by family: temperatures, then dimensions, then densities, each in
// order of occurrence. A match whose capture fails to parse is skipped.
func ExtractMeasurements(text string) []Measurement {
	var measurements []Measurement

	for _, m := range tempRe.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			measurements = append(measurements, Measurement{Kind: KindTemperature, Value: v})
		}
	}

	for _, m := range dimRe.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			measurements = append(measurements, Measurement{Kind: KindDimension, Value: v, Unit: m[2]})
		}
	}

	for _, m := range densityRe.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			measurements = append(measurements, Measurement{Kind: KindDensity, Value: v})
		}
	}

	return measurements
}

// ExtractTemperature returns the first temperature reading in text.
func ExtractTemperature(text string) (float64, bool) {
	m := tempRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractDimensionMM returns the first dimension reading in text,
// converted to millimetres.
func ExtractDimensionMM(text string) (float64, bool) {
	m := dimRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	switch m[2] {
	case "m":
		v *= 1000
	case "cm":
		v *= 10
	}
	return v, true
}

// temperaturePhotoRe matches keyword cues of temperature-management photos.
var temperaturePhotoRe = regexp.MustCompile(`到着温度|敷均し温度|初期締固め|温度測定|温度計|出荷時|舗設温度`)

// IsTemperaturePhoto reports whether text belongs to a temperature
// management photo, by keyword cue or an explicit reading.
func IsTemperaturePhoto(text string) bool {
	if temperaturePhotoRe.MatchString(text) {
		return true
	}
	_, ok := ExtractTemperature(text)
	return ok
}

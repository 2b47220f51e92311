// Package hierarchy manages the work-classification master used to
// constrain and verify photo classifications. The master is a CSV
// shipped with the construction standard: one row per photo content
// entry, carrying the photo division and type plus the three nested
// classification levels.
package hierarchy

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Row is one master CSV row.
type Row struct {
	// PhotoDivision is the cost division (写真区分), e.g. 直接工事費.
	PhotoDivision string

	// PhotoType is the photo type (写真種別), e.g. 施工状況写真.
	PhotoType string

	// WorkType is the top classification level (工種).
	WorkType string

	// Variety is the middle classification level (種別).
	Variety string

	// Detail is the bottom classification level (細別).
	Detail string

	// Remarks is the shooting content (撮影内容), the master's lowest layer.
	Remarks string

	// SearchPatterns is a |-separated list of substrings that map free
	// text onto this row.
	SearchPatterns string
}

// Master is the loaded classification hierarchy with level indices.
type Master struct {
	rows      []Row
	workTypes map[string]struct{}
	varieties map[string]map[string]struct{}
	details   map[string]map[string]struct{}
}

// Load reads the master from a CSV file.
func Load(path string) (*Master, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hierarchy master: %w", err)
	}
	return Parse(string(data))
}

// Parse reads the master from CSV content. The first line is a header
// and is skipped; rows with fewer than seven fields are ignored.
func Parse(content string) (*Master, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing hierarchy master: %w", err)
	}

	m := &Master{
		workTypes: make(map[string]struct{}),
		varieties: make(map[string]map[string]struct{}),
		details:   make(map[string]map[string]struct{}),
	}

	for i, fields := range records {
		if i == 0 || len(fields) < 7 {
			continue
		}

		row := Row{
			PhotoDivision:  fields[0],
			PhotoType:      fields[1],
			WorkType:       fields[2],
			Variety:        fields[3],
			Detail:         fields[4],
			Remarks:        fields[5],
			SearchPatterns: fields[6],
		}
		m.index(row)
		m.rows = append(m.rows, row)
	}

	return m, nil
}

// index updates the level lookups for one row.
func (m *Master) index(row Row) {
	if row.WorkType == "" {
		return
	}
	m.workTypes[row.WorkType] = struct{}{}

	if row.Variety == "" {
		return
	}
	if m.varieties[row.WorkType] == nil {
		m.varieties[row.WorkType] = make(map[string]struct{})
	}
	m.varieties[row.WorkType][row.Variety] = struct{}{}

	if row.Detail == "" {
		return
	}
	key := row.WorkType + "\x00" + row.Variety
	if m.details[key] == nil {
		m.details[key] = make(map[string]struct{})
	}
	m.details[key][row.Detail] = struct{}{}
}

// Rows returns all master rows.
func (m *Master) Rows() []Row {
	return m.rows
}

// WorkTypes returns the distinct work types, sorted.
func (m *Master) WorkTypes() []string {
	return sortedKeys(m.workTypes)
}

// Varieties returns the varieties under a work type, sorted.
func (m *Master) Varieties(workType string) []string {
	return sortedKeys(m.varieties[workType])
}

// Details returns the details under a (work type, variety) pair, sorted.
func (m *Master) Details(workType, variety string) []string {
	return sortedKeys(m.details[workType+"\x00"+variety])
}

// PhotoTypes returns the distinct photo types, sorted.
func (m *Master) PhotoTypes() []string {
	set := make(map[string]struct{})
	for _, row := range m.rows {
		if row.PhotoType != "" {
			set[row.PhotoType] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// FindByPattern returns the rows whose search patterns match text.
// A row matches when any of its |-separated patterns is a substring.
func (m *Master) FindByPattern(text string) []Row {
	var matched []Row
	for _, row := range m.rows {
		if row.SearchPatterns == "" {
			continue
		}
		for _, pattern := range strings.Split(row.SearchPatterns, "|") {
			if pattern != "" && strings.Contains(text, pattern) {
				matched = append(matched, row)
				break
			}
		}
	}
	return matched
}

// FilterByWorkTypes returns a master restricted to the given work
// types. An empty filter returns the master unchanged.
func (m *Master) FilterByWorkTypes(workTypes []string) *Master {
	if len(workTypes) == 0 {
		return m
	}

	keep := make(map[string]struct{}, len(workTypes))
	for _, wt := range workTypes {
		keep[wt] = struct{}{}
	}

	return m.filter(func(row Row) bool {
		_, ok := keep[row.WorkType]
		return ok
	})
}

// FilterByWorkTypeAndVariety returns a master restricted to one work
// type and, when variety is non-empty, one variety under it.
func (m *Master) FilterByWorkTypeAndVariety(workType, variety string) *Master {
	return m.filter(func(row Row) bool {
		if row.WorkType != workType {
			return false
		}
		return variety == "" || row.Variety == variety
	})
}

// filter rebuilds a master from the rows the predicate keeps.
func (m *Master) filter(keep func(Row) bool) *Master {
	out := &Master{
		workTypes: make(map[string]struct{}),
		varieties: make(map[string]map[string]struct{}),
		details:   make(map[string]map[string]struct{}),
	}
	for _, row := range m.rows {
		if keep(row) {
			out.index(row)
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// HierarchyJSON returns the nested work type → variety → details map
// used to build analysis prompts.
func (m *Master) HierarchyJSON() map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(m.workTypes))
	for workType := range m.workTypes {
		varieties := make(map[string][]string)
		for variety := range m.varieties[workType] {
			varieties[variety] = m.Details(workType, variety)
		}
		out[workType] = varieties
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

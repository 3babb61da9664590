package model

import "strings"

// OccurrenceRecord is a single row read from an occurrence dataset.
//
// Fields maps column names to raw cell values. Cells that were empty or
// held a missing-value marker are not stored, so Get reports them as absent.
type OccurrenceRecord struct {
	// Row is the 1-indexed data row number (the header is row 0).
	Row int

	// Fields holds the populated cells keyed by column name.
	Fields map[string]string
}

// naTokens are the cell values read as "missing", mirroring the default
// NA markers of common tabular readers.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell value counts as absent.
func IsMissing(value string) bool {
	_, ok := naTokens[value]
	return ok
}

// NewOccurrenceRecord creates a record from raw cells, dropping missing values.
func NewOccurrenceRecord(row int, cells map[string]string) OccurrenceRecord {
	fields := make(map[string]string, len(cells))
	for name, value := range cells {
		if IsMissing(value) {
			continue
		}
		fields[name] = value
	}
	return OccurrenceRecord{Row: row, Fields: fields}
}

// Get returns the trimmed value of a field and whether it is present and non-empty.
func (r OccurrenceRecord) Get(name string) (string, bool) {
	value, ok := r.Fields[name]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// AudioCandidate is a resolved audio URL paired with the taxon it belongs to.
type AudioCandidate struct {
	URL   string
	Taxon string
}

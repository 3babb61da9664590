package dwca

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/handiism/birdsound-dl/internal/model"
)

// Reader reads occurrence records from a tab-separated stream.
//
// The first line is the header. Double quotes are tolerated around
// fields. Rows shorter than the header leave the trailing columns absent;
// rows longer than the header are an error.
type Reader struct {
	csv    *csv.Reader
	header []string
	row    int
}

// NewReader reads the header from r and returns a Reader positioned at
// the first data row. Errors match model.ErrInputUnreadable.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty dataset", model.ErrInputUnreadable)
		}
		return nil, fmt.Errorf("%w: header: %w", model.ErrInputUnreadable, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	return &Reader{csv: cr, header: uniqueColumns(header)}, nil
}

// Header returns the column names. Repeated names get a ".N" suffix.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (model.OccurrenceRecord, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.OccurrenceRecord{}, io.EOF
		}
		return model.OccurrenceRecord{}, fmt.Errorf("%w: row %d: %w", model.ErrInputUnreadable, r.row+1, err)
	}
	r.row++

	if len(fields) > len(r.header) {
		line, _ := r.csv.FieldPos(0)
		return model.OccurrenceRecord{}, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
			model.ErrInputUnreadable, line, len(r.header), len(fields))
	}

	cells := make(map[string]string, len(fields))
	for i, value := range fields {
		cells[r.header[i]] = value
	}
	return model.NewOccurrenceRecord(r.row, cells), nil
}

// uniqueColumns renames repeated column names to name.1, name.2, ...
func uniqueColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			out[i] = fmt.Sprintf("%s.%d", name, n+1)
			continue
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

// Dataset is a Reader over an open occurrence file.
type Dataset struct {
	*Reader
	file *os.File
}

// OpenDataset opens the file at path and reads its header.
// Errors match model.ErrInputUnreadable.
func OpenDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInputUnreadable, err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Dataset{Reader: r, file: f}, nil
}

// Close closes the underlying file.
func (d *Dataset) Close() error {
	return d.file.Close()
}

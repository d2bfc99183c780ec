package table

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteError reports a derived table that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteCSV serializes the table to path, overwriting any existing file.
// Output uses "\n" line endings and a header row, so identical tables
// produce byte-identical files.
func WriteCSV(t *Table, path string) error {
	for _, row := range t.Rows {
		if len(row) != len(t.Header) {
			return &WriteError{Path: path, Err: fmt.Errorf("row width %d does not match header width %d", len(row), len(t.Header))}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		_ = f.Close()
		return &WriteError{Path: path, Err: err}
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return &WriteError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

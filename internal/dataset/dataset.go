// Package dataset loads the tab-separated tables phonosim works from: the
// phoneme inventory table, the aggregated language table, the segment
// feature table and the corpus size listing.
//
// Loaders fail fast: the first malformed row aborts the load and no partial
// result is returned.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformedRow is wrapped by every row-level load error.
var ErrMalformedRow = errors.New("malformed row")

// RowError locates a malformed row.
type RowError struct {
	Table string
	Line  int // 1-based, header included
	Msg   string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Table, e.Line, e.Msg)
}

func (e *RowError) Unwrap() error { return ErrMalformedRow }

func rowErr(table string, line int, format string, args ...any) error {
	return &RowError{Table: table, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false
	return reader
}

// readTSV returns the header and data rows of a tab-separated table.
func readTSV(table string, r io.Reader) (header []string, rows [][]string, err error) {
	reader := newTSVReader(r)
	all, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, nil, rowErr(table, perr.Line, "%v", perr.Err)
		}
		return nil, nil, fmt.Errorf("%s: %w", table, err)
	}
	if len(all) == 0 {
		return nil, nil, rowErr(table, 1, "missing header")
	}
	return all[0], all[1:], nil
}

func openFile(path string, load func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return load(f)
}

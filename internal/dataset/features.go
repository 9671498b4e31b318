package dataset

import (
	"io"

	"phonosim/internal/features"
)

// ReadFeatures parses the segment feature table: the header names the
// features after a leading symbol column, each row is a symbol followed by
// one cell per feature.
func ReadFeatures(r io.Reader) (*features.Table, error) {
	const table = "features"
	header, rows, err := readTSV(table, r)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, rowErr(table, 1, "header names no features")
	}
	tbl := features.New(header[1:])
	for i, row := range rows {
		if len(row) == 0 || row[0] == "" {
			return nil, rowErr(table, i+2, "missing segment symbol")
		}
		if err := tbl.Set(row[0], row[1:]); err != nil {
			return nil, rowErr(table, i+2, "%v", err)
		}
	}
	return tbl, nil
}

// LoadFeatures reads the feature table at path.
func LoadFeatures(path string) (tbl *features.Table, err error) {
	err = openFile(path, func(r io.Reader) error {
		tbl, err = ReadFeatures(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

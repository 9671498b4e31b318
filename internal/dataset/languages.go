package dataset

import (
	"io"
	"sort"
)

// LangData is one row of the aggregated language table keyed by header name.
type LangData map[string]string

// LangTable maps a language code to its metadata row.
type LangTable map[string]LangData

// Codes returns the table's codes in sorted order.
func (t LangTable) Codes() []string {
	out := make([]string, 0, len(t))
	for code := range t {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// ReadLanguageData zips each row with the header. The code is column 2;
// a later row with the same code replaces an earlier one. Columns beyond
// the header are dropped.
func ReadLanguageData(r io.Reader) (LangTable, []string, error) {
	const table = "languages"
	header, rows, err := readTSV(table, r)
	if err != nil {
		return nil, nil, err
	}
	if len(header) <= colLangCode {
		return nil, nil, rowErr(table, 1, "header has %d columns, need at least %d", len(header), colLangCode+1)
	}
	out := make(LangTable, len(rows))
	for i, row := range rows {
		if len(row) <= colLangCode {
			return nil, nil, rowErr(table, i+2, "missing language code column")
		}
		d := make(LangData, len(header))
		for j, name := range header {
			if j < len(row) {
				d[name] = row[j]
			}
		}
		out[row[colLangCode]] = d
	}
	return out, header, nil
}

// LoadLanguageData reads the language table at path.
func LoadLanguageData(path string) (tbl LangTable, header []string, err error) {
	err = openFile(path, func(r io.Reader) error {
		tbl, header, err = ReadLanguageData(r)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return tbl, header, nil
}

// Package resource derives the set of high-resource languages from a corpus
// size table.
package resource

import "sort"

// SizeRow is one already-parsed row of the corpus size table.
type SizeRow struct {
	Name string // full language name
	ISO3 string // ISO 639-3
	ISO1 string // ISO 639-1, may be empty
	Size int64
}

// Table indexes size rows by either ISO code.
type Table struct {
	rows   []SizeRow
	byISO3 map[string]int
	alias  map[string]string
}

// NewTable indexes rows. A later row for the same ISO 639-3 code replaces an
// earlier one.
func NewTable(rows []SizeRow) *Table {
	t := &Table{
		rows:   make([]SizeRow, 0, len(rows)),
		byISO3: make(map[string]int, len(rows)),
		alias:  make(map[string]string, 2*len(rows)),
	}
	for _, r := range rows {
		if i, ok := t.byISO3[r.ISO3]; ok {
			t.rows[i] = r
		} else {
			t.byISO3[r.ISO3] = len(t.rows)
			t.rows = append(t.rows, r)
		}
		t.alias[r.ISO3] = r.ISO3
		if r.ISO1 != "" {
			t.alias[r.ISO1] = r.ISO3
		}
	}
	return t
}

// Canonical maps an ISO 639-1 or 639-3 code to its 639-3 form. Unknown keys
// are returned unchanged.
func (t *Table) Canonical(code string) string {
	if t == nil {
		return code
	}
	if c, ok := t.alias[code]; ok {
		return c
	}
	return code
}

// Rows returns the rows sorted by size descending, then ISO 639-3 code.
func (t *Table) Rows() []SizeRow {
	if t == nil {
		return nil
	}
	out := append([]SizeRow(nil), t.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}
		return out[i].ISO3 < out[j].ISO3
	})
	return out
}

// Set maps a high-resource ISO 639-3 code to its full name.
type Set map[string]string

// HighResource returns the languages whose corpus size strictly exceeds
// threshold. The default threshold 0 admits any non-empty corpus.
func (t *Table) HighResource(threshold int64) Set {
	out := make(Set)
	if t == nil {
		return out
	}
	for _, r := range t.rows {
		if r.Size > threshold {
			out[r.ISO3] = r.Name
		}
	}
	return out
}

// Contains reports membership; a nil set contains nothing.
func (s Set) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the members in ascending order.
func (s Set) Codes() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

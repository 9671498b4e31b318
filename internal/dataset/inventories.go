package dataset

import (
	"io"

	"phonosim/internal/phoneme"
)

// Column layout of the inventory table. The phoneme occupies the last
// phonemeCols columns of each row.
const (
	colInventoryID = 0
	colLangCode    = 2
	colLangName    = 3
	colTrump       = 4
	phonemeCols    = 6
	minInventory   = colTrump + 1 + phonemeCols
)

// ReadInventoryRecords parses the inventory table; the header row is skipped.
func ReadInventoryRecords(r io.Reader) ([]phoneme.Record, error) {
	const table = "inventories"
	_, rows, err := readTSV(table, r)
	if err != nil {
		return nil, err
	}
	out := make([]phoneme.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < minInventory {
			return nil, rowErr(table, i+2, "expected at least %d columns, got %d", minInventory, len(row))
		}
		ph := row[len(row)-phonemeCols:]
		out = append(out, phoneme.Record{
			InventoryID: row[colInventoryID],
			LangCode:    row[colLangCode],
			LangName:    row[colLangName],
			Trump:       row[colTrump],
			Phoneme: phoneme.Phoneme{
				PhonemeID:           ph[0],
				GlyphID:             ph[1],
				Symbol:              ph[2],
				Class:               ph[3],
				CombinedClass:       ph[4],
				NumOfCombinedGlyphs: ph[5],
			},
		})
	}
	return out, nil
}

// ReadInventories parses the table and builds canonical inventories.
func ReadInventories(r io.Reader) (phoneme.Inventories, phoneme.Names, error) {
	recs, err := ReadInventoryRecords(r)
	if err != nil {
		return nil, nil, err
	}
	invs, names := phoneme.Build(recs)
	return invs, names, nil
}

// LoadInventories reads the inventory table at path.
func LoadInventories(path string) (invs phoneme.Inventories, names phoneme.Names, err error) {
	err = openFile(path, func(r io.Reader) error {
		invs, names, err = ReadInventories(r)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return invs, names, nil
}

package phoneme

import "sort"

// CanonicalTrump is the version flag value selecting the authoritative
// inventory of a language.
const CanonicalTrump = "1"

// Record is one already-parsed row of the inventory table.
type Record struct {
	InventoryID string
	LangCode    string
	LangName    string
	Trump       string
	Phoneme     Phoneme
}

// Inventories maps a language code to its canonical inventory.
type Inventories map[string]*Inventory

// Names maps a language code to the display name from its canonical rows.
type Names map[string]string

// Build groups canonical records by language. Rows whose Trump flag is not
// exactly "1" are ignored entirely, so a language's non-canonical versions
// never contribute phonemes.
func Build(records []Record) (Inventories, Names) {
	langs := make(Inventories)
	names := make(Names)
	for _, r := range records {
		if r.Trump != CanonicalTrump {
			continue
		}
		inv, ok := langs[r.LangCode]
		if !ok {
			inv = NewInventory(ByGlyphID)
			inv.lang = r.LangCode
			langs[r.LangCode] = inv
		}
		inv.Add(r.Phoneme)
		names[r.LangCode] = r.LangName
	}
	return langs, names
}

// Get returns the inventory for code; unknown codes yield the empty set.
func (l Inventories) Get(code string) (*Inventory, bool) {
	inv, ok := l[code]
	if !ok {
		inv = NewInventory(ByGlyphID)
		inv.lang = code
		return inv, false
	}
	return inv, true
}

// Codes returns all language codes in ascending order.
func (l Inventories) Codes() []string {
	out := make([]string, 0, len(l))
	for k := range l {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

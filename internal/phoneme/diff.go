package phoneme

import "sort"

// Diff describes how two inventories relate.
type Diff struct {
	Shared []Phoneme
	OnlyA  []Phoneme
	OnlyB  []Phoneme
}

// Compare computes the shared and exclusive members of a and b, each part
// ordered by symbol.
func Compare(a, b *Inventory) Diff {
	return Diff{
		Shared: bySymbol(a.Intersection(b)),
		OnlyA:  bySymbol(a.Difference(b)),
		OnlyB:  bySymbol(b.Difference(a)),
	}
}

func bySymbol(ps []Phoneme) []Phoneme {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Symbol < ps[j].Symbol })
	return ps
}

// Runes splits a symbol into its code points, e.g. "tʰ" -> ["t", "ʰ"].
func Runes(symbol string) []string {
	out := make([]string, 0, len(symbol))
	for _, r := range symbol {
		out = append(out, string(r))
	}
	return out
}

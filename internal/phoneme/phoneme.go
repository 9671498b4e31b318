package phoneme

import "fmt"

// Phoneme is one segment of an inventory. Treat values as immutable.
type Phoneme struct {
	PhonemeID           string
	GlyphID             string
	Symbol              string // printable IPA, possibly several code points
	Class               string
	CombinedClass       string
	NumOfCombinedGlyphs string
}

func (p Phoneme) String() string {
	return fmt.Sprintf("Phoneme:[%s]", p.Symbol)
}

// KeyFunc returns the identity key used to deduplicate phonemes in a set.
type KeyFunc func(Phoneme) string

// ByGlyphID is the identity used throughout the engine.
func ByGlyphID(p Phoneme) string { return p.GlyphID }

// BySymbol keys on the printable symbol; useful for feature-table lookups,
// never for inventory membership.
func BySymbol(p Phoneme) string { return p.Symbol }

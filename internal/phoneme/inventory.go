package phoneme

import "sort"

// Inventory is a set of phonemes keyed by an identity function.
// A nil *Inventory behaves as the empty set.
type Inventory struct {
	lang  string
	key   KeyFunc
	items map[string]Phoneme
}

// NewInventory returns an empty set keyed by key (ByGlyphID when nil).
func NewInventory(key KeyFunc) *Inventory {
	if key == nil {
		key = ByGlyphID
	}
	return &Inventory{key: key, items: make(map[string]Phoneme)}
}

// Of builds a glyph-keyed inventory from the given phonemes.
func Of(ps ...Phoneme) *Inventory {
	inv := NewInventory(ByGlyphID)
	for _, p := range ps {
		inv.Add(p)
	}
	return inv
}

// Labeled is Of with a language code attached.
func Labeled(lang string, ps ...Phoneme) *Inventory {
	inv := Of(ps...)
	inv.lang = lang
	return inv
}

// Add inserts p; a phoneme with the same key already present is kept.
func (s *Inventory) Add(p Phoneme) bool {
	k := s.key(p)
	if _, ok := s.items[k]; ok {
		return false
	}
	s.items[k] = p
	return true
}

// Lang is the language code the inventory was built for, or "".
func (s *Inventory) Lang() string {
	if s == nil {
		return ""
	}
	return s.lang
}

func (s *Inventory) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Inventory) Contains(p Phoneme) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[s.key(p)]
	return ok
}

// Phonemes returns members ordered by key.
func (s *Inventory) Phonemes() []Phoneme {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Phoneme, len(keys))
	for i, k := range keys {
		out[i] = s.items[k]
	}
	return out
}

// Symbols returns the printable symbols of the members, ordered by key.
func (s *Inventory) Symbols() []string {
	ps := s.Phonemes()
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Symbol
	}
	return out
}

// IntersectionLen is |s ∩ o| under s's key.
func (s *Inventory) IntersectionLen(o *Inventory) int {
	if s.Len() == 0 || o.Len() == 0 {
		return 0
	}
	small, large := s, o
	if large.Len() < small.Len() {
		small, large = large, small
	}
	n := 0
	for k := range small.items {
		if _, ok := large.items[k]; ok {
			n++
		}
	}
	return n
}

// DifferenceLen is |s − o|.
func (s *Inventory) DifferenceLen(o *Inventory) int {
	return s.Len() - s.IntersectionLen(o)
}

// Intersection returns members of s also in o, in key order.
func (s *Inventory) Intersection(o *Inventory) []Phoneme {
	var out []Phoneme
	for _, p := range s.Phonemes() {
		if o.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// Difference returns members of s absent from o, in key order.
func (s *Inventory) Difference(o *Inventory) []Phoneme {
	var out []Phoneme
	for _, p := range s.Phonemes() {
		if !o.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// Package features maps phoneme symbols to binary distinctive-feature vectors.
//
// Vectors are keyed by symbol, not glyph id: the same IPA string in two
// languages resolves to the same vector. Symbols are compared in NFC so that
// precomposed and decomposed spellings of a segment meet.
package features

import (
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"
)

// Vector is a fixed-order sequence of 0/1 feature values.
type Vector []uint8

// Table is read-only after construction and safe for concurrent use.
type Table struct {
	names   []string
	vectors map[string]Vector
}

// ParseValue collapses a ternary cell ("+", "-", "0", "", ...) to {1, 0}.
// Only an exact "+" is positive; every unspecified marker becomes 0.
func ParseValue(cell string) uint8 {
	if cell == "+" {
		return 1
	}
	return 0
}

// New creates an empty table with the given ordered feature names.
func New(names []string) *Table {
	return &Table{
		names:   append([]string(nil), names...),
		vectors: make(map[string]Vector),
	}
}

// Set stores the cells of one symbol. The number of cells must match the
// number of feature names.
func (t *Table) Set(symbol string, cells []string) error {
	if len(cells) != len(t.names) {
		return fmt.Errorf("features: %q has %d values, want %d", symbol, len(cells), len(t.names))
	}
	v := make(Vector, len(cells))
	for i, c := range cells {
		v[i] = ParseValue(c)
	}
	t.vectors[norm.NFC.String(symbol)] = v
	return nil
}

// Len is the number of symbols in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.vectors)
}

// Vector looks a symbol up.
func (t *Table) Vector(symbol string) (Vector, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.vectors[norm.NFC.String(symbol)]
	return v, ok
}

// Cosine returns 1 − cosine distance between a and b. A zero vector has no
// direction and yields 0, as do vectors of different length.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Similarity is Cosine over two symbols; a symbol missing from the table
// contributes 0 rather than failing.
func (t *Table) Similarity(a, b string) (sim float64, known bool) {
	va, okA := t.Vector(a)
	vb, okB := t.Vector(b)
	if !okA || !okB {
		return 0, false
	}
	return Cosine(va, vb), true
}

package script

import (
	"math"
	"sort"
)

// Distribution maps a character to its occurrence count in a corpus.
type Distribution map[rune]int

// Total is the sum of all counts.
func (d Distribution) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Probabilities maps a character to its relative frequency.
type Probabilities map[rune]float64

// Normalize divides every count by the total. An empty distribution yields an
// empty map. d is not modified.
func Normalize(d Distribution) Probabilities {
	total := d.Total()
	p := make(Probabilities, len(d))
	if total <= 0 {
		return p
	}
	sum := float64(total)
	for r, c := range d {
		if c > 0 {
			p[r] = float64(c) / sum
		}
	}
	return p
}

// shared returns the characters present in both, ascending, so that sums are
// accumulated in a fixed order.
func shared(p, q Probabilities) []rune {
	small, large := p, q
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make([]rune, 0, len(small))
	for r := range small {
		if _, ok := large[r]; ok {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func contribution(a, b float64) float64 {
	return math.Exp(math.Log(a) + math.Log(b))
}

// Similarity is the log-domain product-of-probabilities score summed over the
// shared alphabet. It is symmetric and lies in [0, 1].
func Similarity(p, q Probabilities) float64 {
	dot := 0.0
	for _, r := range shared(p, q) {
		dot += contribution(p[r], q[r])
	}
	return dot
}

// Distance is 1 − Similarity.
func Distance(p, q Probabilities) float64 {
	return 1 - Similarity(p, q)
}

// Contribution is one shared character's share of a Similarity score.
type Contribution struct {
	Char  rune
	Value float64
}

// Contributions lists the per-character terms of Similarity in character
// order.
func Contributions(p, q Probabilities) []Contribution {
	chars := shared(p, q)
	out := make([]Contribution, len(chars))
	for i, r := range chars {
		out[i] = Contribution{Char: r, Value: contribution(p[r], q[r])}
	}
	return out
}

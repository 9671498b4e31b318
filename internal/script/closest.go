package script

import "sort"

// Neighbour is one entry of a Closest ranking.
type Neighbour struct {
	Lang  string
	Score float64
}

// Closest ranks every other language by Similarity to lang, best first, ties
// broken by language id, truncated to k (k <= 0 keeps all). The second
// result is false when lang has no distribution.
func Closest(lang string, dists map[string]Distribution, k int) ([]Neighbour, bool) {
	d, ok := dists[lang]
	if !ok {
		return nil, false
	}
	p := Normalize(d)
	out := make([]Neighbour, 0, len(dists))
	for other, od := range dists {
		if other == lang {
			continue
		}
		out = append(out, Neighbour{Lang: other, Score: Similarity(p, Normalize(od))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Lang < out[j].Lang
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, true
}

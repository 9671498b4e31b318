package score

import "phonosim/internal/phoneme"

type overlapScorer struct{}

// Overlap scores by the raw intersection size. It is unnormalized and favours
// large inventories; keep it as a fallback.
func Overlap() Scorer { return overlapScorer{} }

func (overlapScorer) Name() string { return string(KindOverlap) }

func (overlapScorer) Score(a, b *phoneme.Inventory) float64 {
	return float64(a.IntersectionLen(b))
}

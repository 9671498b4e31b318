package score

import (
	"phonosim/internal/diag"
	"phonosim/internal/phoneme"
)

type f1Scorer struct {
	reporter diag.Reporter
}

// F1 treats b as the prediction and a as the reference. With tp = |A∩B|,
// fp = |B−A| and fn = |A−B| the harmonic mean of precision and recall reduces
// to 2tp / (2tp + fp + fn), which is how it is computed here; that form is
// exactly symmetric in a and b and yields exactly 1 for identical sets.
//
// Empty-inventory findings are reported once per language.
func F1(r diag.Reporter) Scorer {
	if r == nil {
		return f1Scorer{}
	}
	return f1Scorer{reporter: diag.NewOnceReporter(r)}
}

func (f1Scorer) Name() string { return string(KindF1) }

func (s f1Scorer) Score(a, b *phoneme.Inventory) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		reportEmpty(s.reporter, "f1", a, b)
		return EmptySentinel
	}
	tp := a.IntersectionLen(b)
	if tp == 0 {
		return 0
	}
	fp := b.Len() - tp
	fn := a.Len() - tp
	return float64(2*tp) / float64(2*tp+fp+fn)
}

// PrecisionRecall exposes the two halves of F1 for reporting.
func PrecisionRecall(a, b *phoneme.Inventory) (precision, recall float64, ok bool) {
	if a.Len() == 0 || b.Len() == 0 {
		return 0, 0, false
	}
	tp := float64(a.IntersectionLen(b))
	return tp / float64(b.Len()), tp / float64(a.Len()), true
}

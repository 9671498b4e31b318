package score

import (
	"phonosim/internal/diag"
	"phonosim/internal/features"
	"phonosim/internal/phoneme"
	"phonosim/internal/simcache"
)

type featureScorer struct {
	table    *features.Table
	cache    *simcache.Cache
	reporter diag.Reporter
}

// FeatureCosine scores by distinctive-feature similarity. For every phoneme of
// a it takes the best cosine similarity against any phoneme of b, sums those
// maxima and divides by |A|·|B|. The measure is a fuzzy overlap and is
// asymmetric; it is not an average cosine.
//
// Symbol pairs are memoized in cache, which may be shared between scorers and
// goroutines. A nil cache gets a private one.
func FeatureCosine(table *features.Table, cache *simcache.Cache, r diag.Reporter) Scorer {
	if cache == nil {
		cache = simcache.New(1024)
	}
	var once diag.Reporter
	if r != nil {
		once = diag.NewOnceReporter(r)
	}
	return &featureScorer{table: table, cache: cache, reporter: once}
}

func (*featureScorer) Name() string { return string(KindFeatures) }

func (s *featureScorer) Score(a, b *phoneme.Inventory) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		reportEmpty(s.reporter, "features", a, b)
		return EmptySentinel
	}
	as := a.Symbols()
	bs := b.Symbols()
	s.checkCoverage(as)
	s.checkCoverage(bs)

	total := 0.0
	for _, p := range as {
		best := 0.0
		for _, q := range bs {
			if v := s.cache.Similarity(p, q, s.cosine); v > best {
				best = v
			}
		}
		total += best
	}
	return total / float64(len(as)*len(bs))
}

func (s *featureScorer) cosine(a, b string) float64 {
	v, _ := s.table.Similarity(a, b)
	return v
}

func (s *featureScorer) checkCoverage(symbols []string) {
	if s.reporter == nil {
		return
	}
	for _, sym := range symbols {
		if _, ok := s.table.Vector(sym); !ok {
			diag.Info(s.reporter, diag.ScoreMissingFeature, sym, "no feature vector; contributes 0")
		}
	}
}

package score

import (
	"fmt"

	"phonosim/internal/diag"
	"phonosim/internal/features"
	"phonosim/internal/simcache"
)

// Deps carries what the strategies may need. Table and Cache are only used by
// KindFeatures.
type Deps struct {
	Table    *features.Table
	Cache    *simcache.Cache
	Reporter diag.Reporter
}

// New builds the strategy named by kind.
func New(kind Kind, deps Deps) (Scorer, error) {
	switch kind {
	case KindOverlap:
		return Overlap(), nil
	case KindF1:
		return F1(deps.Reporter), nil
	case KindFeatures:
		if deps.Table == nil {
			return nil, fmt.Errorf("scorer %q needs a feature table", kind)
		}
		return FeatureCosine(deps.Table, deps.Cache, deps.Reporter), nil
	}
	return nil, fmt.Errorf("unknown scorer %q", kind)
}

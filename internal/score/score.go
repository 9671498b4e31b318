package score

import (
	"fmt"
	"strings"

	"phonosim/internal/diag"
	"phonosim/internal/phoneme"
)

// EmptySentinel marks a comparison against an empty inventory.
const EmptySentinel = -1.0

// IsSentinel reports whether v is the empty-inventory marker.
func IsSentinel(v float64) bool { return v == EmptySentinel }

// Scorer compares two inventories.
type Scorer interface {
	Name() string
	Score(a, b *phoneme.Inventory) float64
}

// Kind selects a strategy by name.
type Kind string

const (
	KindOverlap  Kind = "overlap"
	KindF1       Kind = "f1"
	KindFeatures Kind = "features"
)

// ParseKind accepts the strategy names used on the command line and in config.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overlap", "intersection":
		return KindOverlap, nil
	case "f1", "":
		return KindF1, nil
	case "features", "feature", "cosine":
		return KindFeatures, nil
	default:
		return "", fmt.Errorf("unknown scorer %q (expected overlap|f1|features)", s)
	}
}

// reportEmpty names the empty side, so a reporter that drops repeats keeps
// one finding per empty language however many pairs it takes part in.
func reportEmpty(r diag.Reporter, name string, a, b *phoneme.Inventory) {
	empty, other := a, b
	if a.Len() != 0 {
		empty, other = b, a
	}
	diag.Warn(r, diag.ScoreEmptyInventory, empty.Lang(),
		fmt.Sprintf("%s: empty inventory (compared with %s)", name, other.Lang()))
}

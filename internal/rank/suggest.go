package rank

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// suggestFloor is the lowest Jaro-Winkler similarity offered as a suggestion.
const suggestFloor = 0.75

// Suggest returns up to n known codes resembling code, best first. Both the
// codes and the language names are matched.
func (e *Engine) Suggest(code string, n int) []string {
	known := make(map[string]string, len(e.Inventories))
	for c := range e.Inventories {
		known[c] = e.Names[c]
	}
	return Suggest(code, known, n)
}

// Suggest matches code against the keys of known and their values, which
// are display names and may be empty.
func Suggest(code string, known map[string]string, n int) []string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || n <= 0 {
		return nil
	}
	type cand struct {
		code  string
		score float64
	}
	var cands []cand
	for c, name := range known {
		if c == code {
			continue
		}
		best := matchr.JaroWinkler(code, strings.ToLower(c), false)
		if name != "" {
			if s := matchr.JaroWinkler(code, strings.ToLower(name), false); s > best {
				best = s
			}
		}
		if best >= suggestFloor {
			cands = append(cands, cand{c, best})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].code < cands[j].code
	})
	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.code
	}
	return out
}

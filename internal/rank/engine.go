package rank

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"phonosim/internal/diag"
	"phonosim/internal/phoneme"
	"phonosim/internal/resource"
	"phonosim/internal/score"
	"phonosim/internal/script"
	"phonosim/internal/trace"
)

// ErrNoScorer is returned by Rank when the query names no scorer.
var ErrNoScorer = errors.New("rank: no scorer")

// Engine holds the loaded dataset. It is read-only during ranking and safe
// to share between concurrent queries as long as the scorer is.
type Engine struct {
	Inventories  phoneme.Inventories
	Names        phoneme.Names
	HighResource resource.Set                   // nil means no language qualifies
	Dists        map[string]script.Distribution // optional, for script distance
	// Aliases maps corpus codes (ISO 639-1 or 639-3) onto inventory codes
	// when Dists is keyed by corpus file suffix. Optional.
	Aliases  *resource.Table
	Reporter diag.Reporter
}

// Query describes one ranking request.
type Query struct {
	Lang             string
	Scorer           score.Scorer
	HighResourceOnly bool
	K                int  // <= 0 keeps every candidate
	ScriptDistance   bool // annotate results with script distance
	Jobs             int  // > 1 scores candidates in parallel
}

// Result is one ranked candidate.
type Result struct {
	Lang  string  `json:"lang"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`

	// ScriptDistance is 1 - script similarity; valid only when HasScript.
	ScriptDistance float64 `json:"script_distance"`
	HasScript      bool    `json:"has_script,omitempty"`
}

// Sentinel reports whether the result carries the empty-inventory sentinel.
func (r Result) Sentinel() bool { return score.IsSentinel(r.Score) }

// Rank scores q.Lang against every other language.
func (e *Engine) Rank(ctx context.Context, q Query) ([]Result, error) {
	if q.Scorer == nil {
		return nil, ErrNoScorer
	}
	ctx, span := trace.Start(ctx, trace.ScopeStage, "rank:"+q.Lang)
	span.WithExtra("scorer", q.Scorer.Name())
	defer span.End("")

	query := e.lookup(q.Lang)
	candidates := e.candidates(q.Lang, q.HighResourceOnly)
	if len(candidates) == 0 {
		diag.Warn(e.Reporter, diag.RankNoCandidates, q.Lang, "no languages to compare against")
		return []Result{}, nil
	}
	span.WithExtra("candidates", strconv.Itoa(len(candidates)))

	results := make([]Result, len(candidates))
	if err := e.scoreAll(ctx, query, candidates, q, results); err != nil {
		return nil, err
	}

	Sort(results)
	if q.K > 0 && len(results) > q.K {
		results = results[:q.K]
	}
	if q.ScriptDistance {
		e.annotate(q.Lang, results)
	}
	return results, nil
}

func (e *Engine) scoreAll(ctx context.Context, query *phoneme.Inventory, candidates []string, q Query, out []Result) error {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	one := func(i int) {
		lang := candidates[i]
		other, _ := e.Inventories.Get(lang)
		s := q.Scorer.Score(query, other)
		out[i] = Result{Lang: lang, Name: e.Names[lang], Score: s}
		if tracer.Level() >= trace.LevelDebug {
			trace.Point(tracer, trace.ScopePair, "pair:"+q.Lang+"/"+lang, strconv.FormatFloat(s, 'g', 6, 64), parent)
		}
	}

	if q.Jobs <= 1 {
		for i := range candidates {
			if err := ctx.Err(); err != nil {
				return err
			}
			one(i)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(q.Jobs)
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			one(i)
			return nil
		})
	}
	return g.Wait()
}

// candidates lists the codes to compare against, sorted, without the query.
func (e *Engine) candidates(query string, highOnly bool) []string {
	codes := e.Inventories.Codes()
	out := codes[:0]
	for _, c := range codes {
		if c == query {
			continue
		}
		if highOnly && !e.HighResource.Contains(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// scriptDists keys Dists by inventory code. A corpus already named by its
// ISO 639-3 code wins over one reached through an alias.
func (e *Engine) scriptDists() map[string]script.Distribution {
	if e.Aliases == nil {
		return e.Dists
	}
	out := make(map[string]script.Distribution, len(e.Dists))
	for code, d := range e.Dists {
		if c := e.Aliases.Canonical(code); c == code {
			out[c] = d
		}
	}
	for code, d := range e.Dists {
		c := e.Aliases.Canonical(code)
		if _, taken := out[c]; !taken {
			out[c] = d
		}
	}
	return out
}

func (e *Engine) annotate(query string, results []Result) {
	dists := e.scriptDists()
	qd, ok := dists[query]
	if !ok {
		diag.Info(e.Reporter, diag.ScriptMissingDist, query, "no script distribution; distances omitted")
		return
	}
	qp := script.Normalize(qd)
	for i := range results {
		d, ok := dists[results[i].Lang]
		if !ok {
			continue
		}
		results[i].ScriptDistance = script.Distance(qp, script.Normalize(d))
		results[i].HasScript = true
	}
}

// lookup returns the inventory for code; an unknown code yields an empty
// inventory and a diagnostic with suggestions.
func (e *Engine) lookup(code string) *phoneme.Inventory {
	inv, ok := e.Inventories.Get(code)
	if !ok {
		msg := "unknown language code"
		if sugg := e.Suggest(code, 3); len(sugg) > 0 {
			msg += "; did you mean " + strings.Join(sugg, ", ") + "?"
		}
		diag.Warn(e.Reporter, diag.RankUnknownLanguage, code, msg)
	}
	return inv
}

// Compare scores a against b with s. Unknown codes behave as empty
// inventories.
func (e *Engine) Compare(a, b string, s score.Scorer) (float64, error) {
	if s == nil {
		return 0, ErrNoScorer
	}
	return s.Score(e.lookup(a), e.lookup(b)), nil
}

// Diff splits the phonemes of a and b into shared and unique parts.
func (e *Engine) Diff(a, b string) phoneme.Diff {
	return phoneme.Compare(e.lookup(a), e.lookup(b))
}

// Sort orders results by score descending, then language code.
func Sort(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Lang < results[j].Lang
	})
}

// AllSentinel reports whether every result carries the empty-inventory
// sentinel, which is how an unknown query language shows up.
func AllSentinel(results []Result) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !r.Sentinel() {
			return false
		}
	}
	return true
}

func (r Result) String() string {
	s := fmt.Sprintf("%.4f\t%s", r.Score, r.Lang)
	if r.HasScript {
		s += fmt.Sprintf("\t%.4f", r.ScriptDistance)
	}
	return s
}

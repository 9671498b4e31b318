package script

import (
	"fmt"
	"sort"

	"phonosim/internal/diag"
)

const (
	// DefaultMinSize is the corpus floor (in lines) below which a language
	// is not clustered at all.
	DefaultMinSize = 100
	// DefaultThreshold is the similarity a language must exceed to join.
	DefaultThreshold = 0.004
)

// Options tunes Run. Values are taken as given; start from DefaultOptions.
type Options struct {
	MinSize   int     // corpus size floor in lines; languages below it are skipped
	Threshold float64 // a language joins a cluster only when its score exceeds this
	Reporter  diag.Reporter
	// Progress, if set, is called after each language is placed.
	Progress func(lang string, cluster int, score float64)
}

// DefaultOptions returns the stock floor and threshold.
func DefaultOptions() Options {
	return Options{MinSize: DefaultMinSize, Threshold: DefaultThreshold}
}

// Cluster is a group of languages with similar character profiles.
type Cluster struct {
	ID      int
	Members []string // in insertion order; Members[0] is the representative
	Dists   map[string]Distribution
}

// Representative is the first-inserted member.
func (c *Cluster) Representative() string {
	return c.Members[0]
}

func (c *Cluster) add(lang string, d Distribution) {
	c.Members = append(c.Members, lang)
	c.Dists[lang] = d
}

// Assignment records where one language was placed and why.
type Assignment struct {
	Lang    string
	Cluster int
	Score   float64 // best score against an existing representative; -1 if none
	Created bool
}

// Result is the outcome of one clustering run.
type Result struct {
	Clusters    []*Cluster
	Assignments []Assignment
	Skipped     []string // below MinSize, ascending
}

// ClusterOf returns the cluster holding lang.
func (r *Result) ClusterOf(lang string) (*Cluster, bool) {
	for _, c := range r.Clusters {
		if _, ok := c.Dists[lang]; ok {
			return c, true
		}
	}
	return nil, false
}

// Order returns the processing order used by Cluster: larger corpora first,
// ties broken by language id.
func Order(sizes map[string]int) []string {
	langs := make([]string, 0, len(sizes))
	for l := range sizes {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if sizes[langs[i]] != sizes[langs[j]] {
			return sizes[langs[i]] > sizes[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}

// Run clusters dists. sizes gives each corpus size (line count); when a
// language has no entry its character total is used instead.
func Run(dists map[string]Distribution, sizes map[string]int, opts Options) *Result {
	effective := make(map[string]int, len(dists))
	for lang, d := range dists {
		if n, ok := sizes[lang]; ok {
			effective[lang] = n
		} else {
			effective[lang] = d.Total()
		}
	}

	res := &Result{}
	probs := make(map[string]Probabilities, len(dists))
	for _, lang := range Order(effective) {
		d := dists[lang]
		if effective[lang] < opts.MinSize {
			res.Skipped = append(res.Skipped, lang)
			diag.Info(opts.Reporter, diag.ScriptSmallCorpus, lang,
				fmt.Sprintf("size %d below minimum %d", effective[lang], opts.MinSize))
			continue
		}
		p := Normalize(d)
		if len(p) == 0 {
			diag.Warn(opts.Reporter, diag.ScriptEmptyDistribution, lang, "no countable characters")
		}
		probs[lang] = p

		var best *Cluster
		bestScore := -1.0
		for _, c := range res.Clusters {
			score := Similarity(p, probs[c.Representative()])
			if score > bestScore {
				bestScore = score
				best = c
			}
		}

		a := Assignment{Lang: lang, Score: bestScore}
		if best != nil && bestScore > opts.Threshold {
			best.add(lang, d)
			a.Cluster = best.ID
		} else {
			c := &Cluster{ID: len(res.Clusters), Dists: make(map[string]Distribution)}
			c.add(lang, d)
			res.Clusters = append(res.Clusters, c)
			a.Cluster = c.ID
			a.Created = true
		}
		res.Assignments = append(res.Assignments, a)
		if opts.Progress != nil {
			opts.Progress(lang, a.Cluster, bestScore)
		}
	}
	sort.Strings(res.Skipped)
	return res
}

// Package testkit holds invariant checks shared by the ranking and
// clustering tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"phonosim/internal/rank"
	"phonosim/internal/resource"
	"phonosim/internal/script"
)

// CheckRankingInvariants verifies a ranking for query:
// 1) the query language is absent
// 2) scores are non-increasing, equal scores ordered by language code
// 3) no language appears twice
// 4) when high is non-nil, every language is in it
func CheckRankingInvariants(results []rank.Result, query string, high resource.Set) error {
	seen := make(map[string]struct{}, len(results))
	for i, r := range results {
		if r.Lang == query {
			return fmt.Errorf("result %d is the query language %q", i, query)
		}
		if _, dup := seen[r.Lang]; dup {
			return fmt.Errorf("language %q ranked twice", r.Lang)
		}
		seen[r.Lang] = struct{}{}
		if high != nil && !high.Contains(r.Lang) {
			return fmt.Errorf("result %d (%s) is not high-resource", i, r.Lang)
		}
		if i == 0 {
			continue
		}
		prev := results[i-1]
		if prev.Score < r.Score {
			return fmt.Errorf("results %d..%d out of order: %g < %g", i-1, i, prev.Score, r.Score)
		}
		if prev.Score == r.Score && prev.Lang > r.Lang {
			return fmt.Errorf("tie at %g broken wrongly: %s before %s", r.Score, prev.Lang, r.Lang)
		}
	}
	return nil
}

// CheckClusterInvariants verifies a clustering of dists:
// 1) every clustered language sits in exactly one cluster
// 2) clustered and skipped languages together cover dists
// 3) cluster ids are dense and each representative is the first member
// 4) each assignment points at an existing cluster
func CheckClusterInvariants(res *script.Result, dists map[string]script.Distribution) error {
	if res == nil {
		return fmt.Errorf("nil result")
	}
	nClusters, err := safecast.Conv[uint32](len(res.Clusters))
	if err != nil {
		return fmt.Errorf("cluster count overflow: %w", err)
	}
	owner := make(map[string]int, len(dists))
	for i, c := range res.Clusters {
		if c.ID != i {
			return fmt.Errorf("cluster at index %d has id %d", i, c.ID)
		}
		if len(c.Members) == 0 {
			return fmt.Errorf("cluster %d is empty", c.ID)
		}
		if len(c.Members) != len(c.Dists) {
			return fmt.Errorf("cluster %d: %d members, %d distributions", c.ID, len(c.Members), len(c.Dists))
		}
		if c.Representative() != c.Members[0] {
			return fmt.Errorf("cluster %d representative %q is not first member", c.ID, c.Representative())
		}
		for _, m := range c.Members {
			if prev, dup := owner[m]; dup {
				return fmt.Errorf("language %q in clusters %d and %d", m, prev, c.ID)
			}
			owner[m] = c.ID
		}
	}
	for _, s := range res.Skipped {
		if _, dup := owner[s]; dup {
			return fmt.Errorf("skipped language %q is also clustered", s)
		}
		owner[s] = -1
	}
	for lang := range dists {
		if _, ok := owner[lang]; !ok {
			return fmt.Errorf("language %q neither clustered nor skipped", lang)
		}
	}
	for _, a := range res.Assignments {
		id, err := safecast.Conv[uint32](a.Cluster)
		if err != nil || id >= nClusters {
			return fmt.Errorf("assignment of %q to unknown cluster %d", a.Lang, a.Cluster)
		}
		if owner[a.Lang] != a.Cluster {
			return fmt.Errorf("assignment of %q to %d disagrees with membership %d", a.Lang, a.Cluster, owner[a.Lang])
		}
	}
	return nil
}

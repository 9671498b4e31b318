package testkit

import (
	"testing"

	"phonosim/internal/rank"
	"phonosim/internal/resource"
	"phonosim/internal/script"
)

func TestCheckRankingInvariants(t *testing.T) {
	good := []rank.Result{{Lang: "b", Score: 0.9}, {Lang: "a", Score: 0.5}, {Lang: "c", Score: 0.5}}
	if err := CheckRankingInvariants(good, "q", nil); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	bad := map[string][]rank.Result{
		"query":    {{Lang: "q", Score: 1}},
		"order":    {{Lang: "a", Score: 0.1}, {Lang: "b", Score: 0.2}},
		"tiebreak": {{Lang: "b", Score: 0.5}, {Lang: "a", Score: 0.5}},
		"dup":      {{Lang: "a", Score: 0.5}, {Lang: "a", Score: 0.4}},
	}
	for name, rs := range bad {
		if err := CheckRankingInvariants(rs, "q", nil); err == nil {
			t.Fatalf("%s: expected violation", name)
		}
	}
	high := resource.Set{"b": "B"}
	if err := CheckRankingInvariants(good, "q", high); err == nil {
		t.Fatal("expected high-resource violation")
	}
}

func TestCheckClusterInvariants(t *testing.T) {
	dists := map[string]script.Distribution{
		"eng":  {'a': 60, 'b': 40},
		"deu":  {'a': 55, 'b': 45},
		"rus":  {'ж': 100},
		"tiny": {'a': 1},
	}
	sizes := map[string]int{"eng": 500, "deu": 400, "rus": 300, "tiny": 2}
	res := script.Run(dists, sizes, script.DefaultOptions())
	if err := CheckClusterInvariants(res, dists); err != nil {
		t.Fatalf("clustering violates invariants: %v", err)
	}
	res.Clusters[0].Members = append(res.Clusters[0].Members, "rus")
	res.Clusters[0].Dists["rus"] = dists["rus"]
	if err := CheckClusterInvariants(res, dists); err == nil {
		t.Fatal("expected duplicate membership to be caught")
	}
}

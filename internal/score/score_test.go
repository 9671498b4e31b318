package score

import (
	"math"
	"testing"

	"phonosim/internal/diag"
	"phonosim/internal/features"
	"phonosim/internal/phoneme"
	"phonosim/internal/simcache"
)

func ph(sym string) phoneme.Phoneme {
	return phoneme.Phoneme{GlyphID: "g:" + sym, Symbol: sym}
}

func inv(lang string, syms ...string) *phoneme.Inventory {
	ps := make([]phoneme.Phoneme, len(syms))
	for i, s := range syms {
		ps[i] = ph(s)
	}
	return phoneme.Labeled(lang, ps...)
}

func featureTable(t *testing.T) *features.Table {
	t.Helper()
	tbl := features.New([]string{"consonantal", "voice", "nasal", "dorsal", "syllabic"})
	rows := map[string][]string{
		"k": {"+", "-", "-", "+", "-"},
		"g": {"+", "+", "-", "+", "-"},
		"t": {"+", "-", "-", "-", "-"},
		"n": {"+", "+", "+", "-", "-"},
		"a": {"-", "+", "-", "+", "+"},
		"i": {"-", "+", "-", "-", "+"},
	}
	for sym, cells := range rows {
		if err := tbl.Set(sym, cells); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"f1": KindF1, "": KindF1, "Overlap": KindOverlap, "cosine": KindFeatures, "features": KindFeatures}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = (%q, %v), want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("jaccard"); err == nil {
		t.Fatal("expected error for unknown scorer")
	}
}

func TestOverlapIsIntersectionSize(t *testing.T) {
	cases := []struct {
		a, b *phoneme.Inventory
		want float64
	}{
		{inv("x", "k", "a", "n"), inv("y", "k", "a", "t"), 2},
		{inv("x", "k"), inv("y", "t"), 0},
		{inv("x"), inv("y", "t"), 0},
		{inv("x", "k", "a"), inv("y", "k", "a"), 2},
	}
	for _, tc := range cases {
		if got := Overlap().Score(tc.a, tc.b); got != tc.want {
			t.Fatalf("Overlap = %v, want %v", got, tc.want)
		}
	}
}

func TestF1KoreanJapanese(t *testing.T) {
	kor := inv("kor", "k", "a", "n")
	jpn := inv("jpn", "k", "a", "t")
	got := F1(nil).Score(kor, jpn)
	if got != 2.0/3.0 {
		t.Fatalf("F1(kor, jpn) = %v, want 2/3", got)
	}
	p, r, ok := PrecisionRecall(kor, jpn)
	if !ok || math.Abs(p-2.0/3.0) > 1e-15 || math.Abs(r-2.0/3.0) > 1e-15 {
		t.Fatalf("precision/recall = %v/%v", p, r)
	}
}

func TestF1Properties(t *testing.T) {
	sets := []*phoneme.Inventory{
		inv("a", "k"),
		inv("b", "k", "a", "n"),
		inv("c", "k", "a", "t", "i"),
		inv("d", "p", "b", "m"),
		inv("e", "a", "i", "u", "e", "o", "k", "g"),
	}
	f1 := F1(nil)
	for _, a := range sets {
		if got := f1.Score(a, a); got != 1 {
			t.Fatalf("F1(%s,%s) = %v, want exactly 1", a.Lang(), a.Lang(), got)
		}
		for _, b := range sets {
			ab, ba := f1.Score(a, b), f1.Score(b, a)
			if ab != ba {
				t.Fatalf("F1 not symmetric for %s/%s: %v vs %v", a.Lang(), b.Lang(), ab, ba)
			}
			if ab < 0 || ab > 1 {
				t.Fatalf("F1 out of range: %v", ab)
			}
		}
	}
	if got := f1.Score(inv("x", "k", "a"), inv("y", "p", "b")); got != 0 {
		t.Fatalf("disjoint F1 = %v, want 0", got)
	}
}

func TestEmptyInventorySentinel(t *testing.T) {
	bag := diag.NewBag(10)
	rep := diag.BagReporter{Bag: bag}
	empty := inv("qqq")
	target := inv("jpn", "k", "a", "t")

	if got := F1(rep).Score(empty, target); !IsSentinel(got) {
		t.Fatalf("F1 on empty = %v, want sentinel", got)
	}
	fc := FeatureCosine(featureTable(t), nil, rep)
	if got := fc.Score(empty, target); !IsSentinel(got) {
		t.Fatalf("features on empty = %v, want sentinel", got)
	}
	if got := fc.Score(target, empty); !IsSentinel(got) {
		t.Fatalf("features against empty = %v, want sentinel", got)
	}
	items := bag.Items()
	if len(items) < 2 || items[0].Code != diag.ScoreEmptyInventory || items[0].Subject != "qqq" {
		t.Fatalf("expected empty-inventory diagnostics, got %v", items)
	}
}

func TestF1ReportsEmptyLanguageOnce(t *testing.T) {
	bag := diag.NewBag(10)
	f1 := F1(diag.BagReporter{Bag: bag})
	empty := inv("qqq")
	for _, other := range []*phoneme.Inventory{inv("jpn", "k"), inv("kor", "a"), inv("eng", "t")} {
		f1.Score(empty, other)
	}
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", bag.Len(), bag.Items())
	}
}

func TestFeatureCosine(t *testing.T) {
	tbl := featureTable(t)
	fc := FeatureCosine(tbl, nil, nil)

	a := inv("x", "k", "a")
	// identical sets: each maximum is 1, sum 2, divided by 2*2
	if got := fc.Score(a, a); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("features(a,a) = %v, want 0.5", got)
	}

	// asymmetric normalisation by |A|·|B| with per-A maxima
	b := inv("y", "g")
	kg, _ := tbl.Similarity("k", "g")
	ag, _ := tbl.Similarity("a", "g")
	want := (kg + ag) / 2
	if got := fc.Score(a, b); math.Abs(got-want) > 1e-12 {
		t.Fatalf("features(a,b) = %v, want %v", got, want)
	}
}

func TestFeatureCosineMissingSymbol(t *testing.T) {
	bag := diag.NewBag(10)
	fc := FeatureCosine(featureTable(t), nil, diag.BagReporter{Bag: bag})
	a := inv("x", "k", "ʘ")
	b := inv("y", "k")
	// ʘ contributes 0, k matches itself: (1 + 0) / (2*1)
	if got := fc.Score(a, b); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("score = %v, want 0.5", got)
	}
	fc.Score(a, b)
	n := 0
	for _, d := range bag.Items() {
		if d.Code == diag.ScoreMissingFeature && d.Subject == "ʘ" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("missing-feature reported %d times, want 1", n)
	}
}

func TestFeatureCosineMemoized(t *testing.T) {
	cache := simcache.New(16)
	fc := FeatureCosine(featureTable(t), cache, nil)
	a := inv("x", "k", "a", "n")
	b := inv("y", "g", "i", "t")

	first := fc.Score(a, b)
	computed := cache.Stats().Computations
	second := fc.Score(a, b)
	if math.Float64bits(first) != math.Float64bits(second) {
		t.Fatalf("scores not bit-identical: %v vs %v", first, second)
	}
	if got := cache.Stats().Computations; got != computed {
		t.Fatalf("second call computed %d new pairs", got-computed)
	}
	if computed != 9 {
		t.Fatalf("computations = %d, want 9 distinct pairs", computed)
	}
	// the reverse direction reuses every pair
	fc.Score(b, a)
	if got := cache.Stats().Computations; got != computed {
		t.Fatalf("reverse direction computed %d new pairs", got-computed)
	}
}

func TestNew(t *testing.T) {
	if _, err := New(KindFeatures, Deps{}); err == nil {
		t.Fatal("features scorer without a table must fail")
	}
	for _, k := range []Kind{KindOverlap, KindF1} {
		s, err := New(k, Deps{})
		if err != nil || s.Name() != string(k) {
			t.Fatalf("New(%q) = (%v, %v)", k, s, err)
		}
	}
}

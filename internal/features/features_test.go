package features

import (
	"math"
	"testing"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl := New([]string{"consonantal", "voice", "nasal", "labial"})
	rows := map[string][]string{
		"p": {"+", "-", "-", "+"},
		"b": {"+", "+", "-", "+"},
		"m": {"+", "+", "+", "+"},
		"ʔ": {"-", "-", "-", "-"},
		"a": {"-", "+", "0", ""},
	}
	for sym, cells := range rows {
		if err := tbl.Set(sym, cells); err != nil {
			t.Fatalf("Set(%q): %v", sym, err)
		}
	}
	return tbl
}

func TestParseValue(t *testing.T) {
	cases := map[string]uint8{"+": 1, "-": 0, "0": 0, "": 0, "+,-": 0}
	for in, want := range cases {
		if got := ParseValue(in); got != want {
			t.Fatalf("ParseValue(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestSetRejectsWrongWidth(t *testing.T) {
	tbl := New([]string{"a", "b"})
	if err := tbl.Set("x", []string{"+"}); err == nil {
		t.Fatal("expected width error")
	}
}

func TestCosine(t *testing.T) {
	tbl := testTable(t)
	if got, _ := tbl.Similarity("p", "p"); math.Abs(got-1) > 1e-12 {
		t.Fatalf("self similarity = %v, want 1", got)
	}
	got, known := tbl.Similarity("p", "b")
	want := 2 / (math.Sqrt(2) * math.Sqrt(3))
	if !known || math.Abs(got-want) > 1e-12 {
		t.Fatalf("Similarity(p,b) = %v, want %v", got, want)
	}
	if got, _ := tbl.Similarity("ʔ", "p"); got != 0 {
		t.Fatalf("zero vector similarity = %v, want 0", got)
	}
	if got, known := tbl.Similarity("p", "ŋ"); got != 0 || known {
		t.Fatalf("missing symbol = (%v,%v), want (0,false)", got, known)
	}
}

func TestUnspecifiedCollapsesToZero(t *testing.T) {
	tbl := testTable(t)
	v, ok := tbl.Vector("a")
	if !ok {
		t.Fatal("missing a")
	}
	want := Vector{0, 1, 0, 0}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("vector(a) = %v, want %v", v, want)
		}
	}
	if m, ok := tbl.Vector("m"); !ok || m[2] != 1 {
		t.Fatalf("vector(m) = %v, want nasal set", m)
	}
}

func TestSymbolsCompareInNFC(t *testing.T) {
	tbl := New([]string{"f"})
	// "ã" precomposed vs a + combining tilde
	if err := tbl.Set("\u00e3", []string{"+"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := tbl.Vector("a\u0303"); !ok {
		t.Fatal("decomposed spelling should resolve to the same vector")
	}
}

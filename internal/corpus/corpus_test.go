package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"phonosim/internal/pipeline"
)

func TestScanExcludesAndFolds(t *testing.T) {
	st, err := Scan(strings.NewReader("Ab, a1!\tIGNORED\nB b\n"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if st.Lines != 2 {
		t.Fatalf("lines = %d, want 2", st.Lines)
	}
	want := map[rune]int{'a': 2, 'b': 3}
	if len(st.Dist) != len(want) {
		t.Fatalf("dist = %v, want %v", st.Dist, want)
	}
	for r, n := range want {
		if st.Dist[r] != n {
			t.Fatalf("count[%q] = %d, want %d", r, st.Dist[r], n)
		}
	}
}

func TestScanNormalizes(t *testing.T) {
	st, err := Scan(strings.NewReader("\u00e3 a\u0303"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	d := st.Dist
	if d['\u00e3'] != 2 {
		t.Fatalf("composed count = %d, want 2 (dist %v)", d['\u00e3'], d)
	}
	if d['\u0303'] != 0 {
		t.Fatal("combining mark must be composed away")
	}
}

func TestCounted(t *testing.T) {
	cases := map[rune]bool{'a': true, 'ж': true, '漢': true, ' ': false, '7': false, '٣': false, '.': false, '«': false, '$': false, '\t': false}
	for r, want := range cases {
		if got := Counted(r); got != want {
			t.Fatalf("Counted(%q) = %v, want %v", r, got, want)
		}
	}
}

func TestListFiltersNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"wikidata.fra", "wikidata.eng", "wikidata.eng.bak", "other.deu", "wikidata."} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := List(dir, DefaultPrefix)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 2 || files[0].Lang != "eng" || files[1].Lang != "fra" {
		t.Fatalf("unexpected files: %+v", files)
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (s *recordSink) OnEvent(ev pipeline.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"wikidata.eng": "the cat\nthe dog\nend\n",
		"wikidata.rus": "кот\n",
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sink := &recordSink{}
	res, err := ScanDir(context.Background(), dir, "", 2, sink)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if res.Sizes["eng"] != 3 || res.Sizes["rus"] != 1 {
		t.Fatalf("sizes = %v", res.Sizes)
	}
	if res.Dists["eng"]['t'] != 3 || res.Dists["rus"]['к'] != 1 {
		t.Fatalf("dists = %v", res.Dists)
	}
	done := 0
	for _, ev := range sink.events {
		if ev.Status == pipeline.StatusDone {
			done++
		}
	}
	if done != 2 {
		t.Fatalf("done events = %d, want 2", done)
	}
}

func TestScanDirMissing(t *testing.T) {
	if _, err := ScanDir(context.Background(), filepath.Join(t.TempDir(), "nope"), "", 1, nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

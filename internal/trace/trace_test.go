package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"off": LevelOff, "": LevelOff, "ERROR": LevelError, "stage": LevelStage, "phase": LevelStage, "detail": LevelDetail, "debug": LevelDebug}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = (%v, %v), want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelStage, FormatText)
	Begin(tr, ScopeStage, "score", 0).End("")
	Point(tr, ScopeLanguage, "lang:kor", "skipped at stage level", 0)
	Error(tr, ScopePair, "pair:kor/jpn", errors.New("boom"), 0)

	out := buf.String()
	if !strings.Contains(out, "→ score") || !strings.Contains(out, "← score") {
		t.Fatalf("missing stage span:\n%s", out)
	}
	if strings.Contains(out, "lang:kor") {
		t.Fatalf("language event leaked at stage level:\n%s", out)
	}
	if !strings.Contains(out, "! pair:kor/jpn (boom)") {
		t.Fatalf("error events must always pass:\n%s", out)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopeRun, "rank", 0).WithExtra("query", "kor").End("ok")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if ev["kind"] != "end" || ev["name"] != "rank" {
		t.Fatalf("unexpected event %v", ev)
	}
	extra := ev["extra"].(map[string]any)
	if extra["query"] != "kor" {
		t.Fatalf("extra lost: %v", extra)
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	ctx, run := Start(ctx, ScopeRun, "run")
	_, stage := Start(ctx, ScopeStage, "load")
	if stage.parentID != run.ID() || run.ID() == 0 {
		t.Fatalf("stage parent = %d, run = %d", stage.parentID, run.ID())
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
}

func TestNopSpanSafe(t *testing.T) {
	s := Begin(Nop, ScopeRun, "x", 0)
	s.WithExtra("k", "v")
	if s.ID() != 0 {
		t.Fatal("nop span must have id 0")
	}
	if d := s.End(""); d < 0 {
		t.Fatal("negative duration")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatal("LevelOff must produce a disabled tracer")
	}
}

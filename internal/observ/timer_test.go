package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "3 tables")
	if err := tm.Time("score", func() error { return errors.New("x") }); err == nil {
		t.Fatal("Time must return fn's error")
	}
	rep := tm.Report()
	if len(rep.Stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(rep.Stages))
	}
	if rep.Stages[0].Note != "3 tables" || rep.Stages[1].Note != "failed" {
		t.Fatalf("unexpected notes: %+v", rep.Stages)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "load") || !strings.Contains(sum, "total") {
		t.Fatalf("summary missing rows:\n%s", sum)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Stages) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"phonosim/internal/diag"
	"phonosim/internal/phoneme"
	"phonosim/internal/rank"
	"phonosim/internal/script"
)

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat(JSON) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRankingText(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	results := []rank.Result{
		{Lang: "eng", Name: "English", Score: 0.857},
		{Lang: "jpn", Name: "Japanese", Score: -1, ScriptDistance: 0.25, HasScript: true},
	}
	if err := p.Ranking("kor", "Korean", "f1", results); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"f1 ranking for kor (Korean)", "0.8570  eng", "   n/a  jpn", "script 0.2500"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRankingUnknownQuery(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	results := []rank.Result{{Lang: "eng", Score: -1}, {Lang: "jpn", Score: -1}}
	if err := p.Ranking("korr", "", "f1", results); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "unknown language korr") {
		t.Fatalf("all-sentinel ranking must name the unknown query:\n%s", buf.String())
	}

	buf.Reset()
	p.Format = FormatJSON
	if err := p.Ranking("korr", "", "f1", results); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Unknown bool `json:"unknown"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || !got.Unknown {
		t.Fatalf("unknown = %v (%v)\n%s", got.Unknown, err, buf.String())
	}
}

func TestCompareWithPrecisionRecall(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	if err := p.Compare("kor", "jpn", "f1", 0.5, &PrecisionRecall{Precision: 0.25, Recall: 1}); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "f1 kor/jpn: 0.5000") || !strings.Contains(out, "precision 0.2500  recall 1.0000") {
		t.Fatalf("unexpected compare output %q", out)
	}
	buf.Reset()
	if err := p.Compare("kor", "jpn", "overlap", 2, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "precision") {
		t.Fatalf("no precision/recall expected: %q", buf.String())
	}
}

func TestRankingJSON(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf, Format: FormatJSON}
	if err := p.Ranking("kor", "", "overlap", nil); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Query   string        `json:"query"`
		Results []rank.Result `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.Query != "kor" || got.Results == nil {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestDiffWithRunes(t *testing.T) {
	a := phoneme.Of(phoneme.Phoneme{GlyphID: "1", Symbol: "tʰ"}, phoneme.Phoneme{GlyphID: "2", Symbol: "a"})
	b := phoneme.Of(phoneme.Phoneme{GlyphID: "2", Symbol: "a"})
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	if err := p.Diff("x", "y", phoneme.Compare(a, b), true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"shared (1)", "only in x (1)", "only in y (0)", "U+0074 U+02B0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClustersAndSizes(t *testing.T) {
	res := &script.Result{
		Clusters: []*script.Cluster{{ID: 0, Members: []string{"eng", "deu"}}},
		Skipped:  []string{"tiny"},
	}
	var buf bytes.Buffer
	p := &Printer{W: &buf}
	if err := p.Clusters(res, map[string]string{"deu": "German"}); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "representative eng") || !strings.Contains(out, "deu (German)") || !strings.Contains(out, "skipped 1") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	entries := SortSizes(map[string]int{"a": 5, "b": 9, "c": 5})
	if entries[0].Lang != "b" || entries[1].Lang != "a" || entries[2].Lang != "c" {
		t.Fatalf("SortSizes = %+v", entries)
	}
}

func TestDiagnostics(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.RankUnknownLanguage, Subject: "kro", Message: "unknown language code"})
	var buf bytes.Buffer
	if err := Diagnostics(&buf, bag, FormatText, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "WARNING [RNK2001] kro: unknown language code\n" {
		t.Fatalf("got %q", got)
	}
	buf.Reset()
	if err := Diagnostics(&buf, bag, FormatJSON, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"code": "RNK2001"`) {
		t.Fatalf("json output:\n%s", buf.String())
	}
}

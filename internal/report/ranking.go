package report

import (
	"fmt"

	"phonosim/internal/phoneme"
	"phonosim/internal/rank"
)

type rankingJSON struct {
	Query   string        `json:"query"`
	Name    string        `json:"name,omitempty"`
	Scorer  string        `json:"scorer"`
	Unknown bool          `json:"unknown,omitempty"`
	Results []rank.Result `json:"results"`
}

// Ranking prints a ranking of candidates against query.
func (p *Printer) Ranking(query, name, scorer string, results []rank.Result) error {
	if p.Format == FormatJSON {
		if results == nil {
			results = []rank.Result{}
		}
		return p.json(rankingJSON{Query: query, Name: name, Scorer: scorer, Unknown: rank.AllSentinel(results), Results: results})
	}
	title := fmt.Sprintf("%s ranking for %s", scorer, query)
	if name != "" {
		title += " (" + name + ")"
	}
	if _, err := fmt.Fprintln(p.W, p.heading(title)); err != nil {
		return err
	}
	if rank.AllSentinel(results) {
		if _, err := fmt.Fprintln(p.W, p.dim("unknown language "+query+": no phoneme inventory to compare")); err != nil {
			return err
		}
	}
	codes := make([]string, len(results))
	for i, r := range results {
		codes[i] = r.Lang
	}
	cw := columnWidth(4, codes...)
	for i, r := range results {
		line := fmt.Sprintf("%4d  %s  %s  %s", i+1, p.score(r.Score, "%.4f"), pad(r.Lang, cw), r.Name)
		if r.HasScript {
			line += p.dim(fmt.Sprintf("  script %.4f", r.ScriptDistance))
		}
		if _, err := fmt.Fprintln(p.W, line); err != nil {
			return err
		}
	}
	return nil
}

// PrecisionRecall holds the two halves of an F1 score.
type PrecisionRecall struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

type compareJSON struct {
	A      string           `json:"a"`
	B      string           `json:"b"`
	Scorer string           `json:"scorer"`
	Score  float64          `json:"score"`
	PR     *PrecisionRecall `json:"precision_recall,omitempty"`
}

// Compare prints a single pairwise score. pr is optional.
func (p *Printer) Compare(a, b, scorer string, v float64, pr *PrecisionRecall) error {
	if p.Format == FormatJSON {
		return p.json(compareJSON{A: a, B: b, Scorer: scorer, Score: v, PR: pr})
	}
	line := fmt.Sprintf("%s %s/%s: %s", scorer, a, b, p.score(v, "%.4f"))
	if pr != nil {
		line += p.dim(fmt.Sprintf("  precision %.4f  recall %.4f", pr.Precision, pr.Recall))
	}
	_, err := fmt.Fprintln(p.W, line)
	return err
}

type phonemeJSON struct {
	Symbol  string   `json:"symbol"`
	GlyphID string   `json:"glyph_id"`
	Class   string   `json:"class,omitempty"`
	Runes   []string `json:"runes,omitempty"`
}

type diffJSON struct {
	A      string        `json:"a"`
	B      string        `json:"b"`
	Shared []phonemeJSON `json:"shared"`
	OnlyA  []phonemeJSON `json:"only_a"`
	OnlyB  []phonemeJSON `json:"only_b"`
}

func phonemesJSON(ps []phoneme.Phoneme, runes bool) []phonemeJSON {
	out := make([]phonemeJSON, len(ps))
	for i, ph := range ps {
		out[i] = phonemeJSON{Symbol: ph.Symbol, GlyphID: ph.GlyphID, Class: ph.Class}
		if runes {
			out[i].Runes = phoneme.Runes(ph.Symbol)
		}
	}
	return out
}

// Diff prints the shared and exclusive phonemes of a and b. With runes set
// the phonemes of a are also broken into code points.
func (p *Printer) Diff(a, b string, d phoneme.Diff, runes bool) error {
	if p.Format == FormatJSON {
		return p.json(diffJSON{
			A:      a,
			B:      b,
			Shared: phonemesJSON(d.Shared, false),
			OnlyA:  phonemesJSON(d.OnlyA, runes),
			OnlyB:  phonemesJSON(d.OnlyB, false),
		})
	}
	sections := []struct {
		title string
		ps    []phoneme.Phoneme
	}{
		{fmt.Sprintf("shared (%d)", len(d.Shared)), d.Shared},
		{fmt.Sprintf("only in %s (%d)", a, len(d.OnlyA)), d.OnlyA},
		{fmt.Sprintf("only in %s (%d)", b, len(d.OnlyB)), d.OnlyB},
	}
	for _, sec := range sections {
		if _, err := fmt.Fprintln(p.W, p.heading(sec.title)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(p.W, "  "+symbols(sec.ps)); err != nil {
			return err
		}
	}
	if !runes {
		return nil
	}
	if _, err := fmt.Fprintln(p.W, p.heading("code points of "+a)); err != nil {
		return err
	}
	for _, ph := range d.Shared {
		if err := p.runeLine(ph); err != nil {
			return err
		}
	}
	for _, ph := range d.OnlyA {
		if err := p.runeLine(ph); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) runeLine(ph phoneme.Phoneme) error {
	parts := phoneme.Runes(ph.Symbol)
	cps := ""
	for i, r := range []rune(ph.Symbol) {
		if i > 0 {
			cps += " "
		}
		cps += fmt.Sprintf("U+%04X", r)
	}
	_, err := fmt.Fprintf(p.W, "  %s  %v  %s\n", pad(ph.Symbol, 6), parts, p.dim(cps))
	return err
}

func symbols(ps []phoneme.Phoneme) string {
	s := ""
	for i, ph := range ps {
		if i > 0 {
			s += " "
		}
		s += ph.Symbol
	}
	return s
}

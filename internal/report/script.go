package report

import (
	"fmt"
	"sort"
	"strings"

	"phonosim/internal/script"
)

type clusterJSON struct {
	ID             int      `json:"id"`
	Representative string   `json:"representative"`
	Members        []string `json:"members"`
}

type clustersJSON struct {
	Clusters []clusterJSON `json:"clusters"`
	Skipped  []string      `json:"skipped"`
}

// Clusters prints every cluster with its members in insertion order.
func (p *Printer) Clusters(res *script.Result, names map[string]string) error {
	if p.Format == FormatJSON {
		out := clustersJSON{Clusters: make([]clusterJSON, len(res.Clusters)), Skipped: res.Skipped}
		for i, c := range res.Clusters {
			out.Clusters[i] = clusterJSON{ID: c.ID, Representative: c.Representative(), Members: c.Members}
		}
		if out.Skipped == nil {
			out.Skipped = []string{}
		}
		return p.json(out)
	}
	for _, c := range res.Clusters {
		title := fmt.Sprintf("cluster %d (%d languages, representative %s)", c.ID, len(c.Members), c.Representative())
		if _, err := fmt.Fprintln(p.W, p.heading(title)); err != nil {
			return err
		}
		members := make([]string, len(c.Members))
		for i, m := range c.Members {
			members[i] = m
			if n := names[m]; n != "" {
				members[i] += " " + p.dim("("+n+")")
			}
		}
		if _, err := fmt.Fprintln(p.W, "  "+strings.Join(members, ", ")); err != nil {
			return err
		}
	}
	if len(res.Skipped) > 0 {
		_, err := fmt.Fprintln(p.W, p.dim(fmt.Sprintf("skipped %d small corpora: %s", len(res.Skipped), strings.Join(res.Skipped, " "))))
		return err
	}
	return nil
}

type neighboursJSON struct {
	Lang       string             `json:"lang"`
	Neighbours []script.Neighbour `json:"neighbours"`
}

// Neighbours prints a Closest ranking.
func (p *Printer) Neighbours(lang string, ns []script.Neighbour) error {
	if p.Format == FormatJSON {
		if ns == nil {
			ns = []script.Neighbour{}
		}
		return p.json(neighboursJSON{Lang: lang, Neighbours: ns})
	}
	if _, err := fmt.Fprintln(p.W, p.heading("closest scripts to "+lang)); err != nil {
		return err
	}
	for i, n := range ns {
		if _, err := fmt.Fprintf(p.W, "%4d  %s  %s\n", i+1, p.score(n.Score, "%.6f"), n.Lang); err != nil {
			return err
		}
	}
	return nil
}

type contributionJSON struct {
	Char  string  `json:"char"`
	Value float64 `json:"value"`
}

type contributionsJSON struct {
	A     string             `json:"a"`
	B     string             `json:"b"`
	Chars []contributionJSON `json:"chars"`
	Total float64            `json:"total"`
}

// Contributions prints each shared character's share of the score.
func (p *Printer) Contributions(a, b string, cs []script.Contribution, total float64) error {
	if p.Format == FormatJSON {
		out := contributionsJSON{A: a, B: b, Chars: make([]contributionJSON, len(cs)), Total: total}
		for i, c := range cs {
			out.Chars[i] = contributionJSON{Char: string(c.Char), Value: c.Value}
		}
		return p.json(out)
	}
	if _, err := fmt.Fprintln(p.W, p.heading(fmt.Sprintf("shared characters of %s and %s", a, b))); err != nil {
		return err
	}
	for _, c := range cs {
		if _, err := fmt.Fprintf(p.W, "  %s  %.6f\n", pad(string(c.Char), 2), c.Value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.W, "total %s\n", p.score(total, "%.6f"))
	return err
}

// SizeEntry is one corpus in a size listing.
type SizeEntry struct {
	Lang  string `json:"lang"`
	Lines int    `json:"lines"`
}

// SortSizes orders a size map by line count descending, then language.
func SortSizes(sizes map[string]int) []SizeEntry {
	out := make([]SizeEntry, 0, len(sizes))
	for l, n := range sizes {
		out = append(out, SizeEntry{Lang: l, Lines: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lines != out[j].Lines {
			return out[i].Lines > out[j].Lines
		}
		return out[i].Lang < out[j].Lang
	})
	return out
}

// Sizes prints corpora by size.
func (p *Printer) Sizes(entries []SizeEntry) error {
	if p.Format == FormatJSON {
		if entries == nil {
			entries = []SizeEntry{}
		}
		return p.json(entries)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(p.W, "%10d  %s\n", e.Lines, e.Lang); err != nil {
			return err
		}
	}
	return nil
}

// Package report renders phonosim results for people (aligned text with
// optional colour) or for programs (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Format selects the output encoding.
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat accepts "text", "pretty" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "pretty":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown output format %q (expected text|json)", s)
}

// Printer writes one kind of result per call.
type Printer struct {
	W      io.Writer
	Format Format
	Color  bool
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) heading(s string) string {
	if !p.Color {
		return s
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(s)
}

func (p *Printer) dim(s string) string {
	if !p.Color {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(s)
}

var (
	highColor = color.New(color.FgGreen, color.Bold)
	midColor  = color.New(color.FgYellow)
	lowColor  = color.New(color.FgRed)
)

// score formats a similarity in [0,1]; negative values are the
// empty-inventory sentinel and print as "n/a".
func (p *Printer) score(v float64, format string) string {
	if v < 0 {
		s := fmt.Sprintf("%*s", len(fmt.Sprintf(format, 0.0)), "n/a")
		if p.Color {
			return lowColor.Sprint(s)
		}
		return s
	}
	s := fmt.Sprintf(format, v)
	if !p.Color {
		return s
	}
	c := lowColor
	switch {
	case v >= 0.75:
		c = highColor
	case v >= 0.4:
		c = midColor
	}
	return c.Sprint(s)
}

// pad right-pads s to width display columns.
func pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// columnWidth is the widest display width among values, at least min.
func columnWidth(min int, values ...string) int {
	w := min
	for _, v := range values {
		if vw := runewidth.StringWidth(v); vw > w {
			w = vw
		}
	}
	return w
}

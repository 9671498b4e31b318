package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"phonosim/internal/diag"
)

type diagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message"`
}

// Diagnostics writes the bag's items, already sorted, to w. Text output is
// "<SEV> [CODE] subject: message" per line.
func Diagnostics(w io.Writer, bag *diag.Bag, format Format, useColor bool) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	items := bag.Items()
	if format == FormatJSON {
		out := make([]diagnosticJSON, len(items))
		for i, d := range items {
			out[i] = diagnosticJSON{Severity: d.Severity.String(), Code: d.Code.ID(), Subject: d.Subject, Message: d.Message}
		}
		p := Printer{W: w}
		return p.json(struct {
			Diagnostics []diagnosticJSON `json:"diagnostics"`
		}{out})
	}
	for _, d := range items {
		sev := d.Severity.String()
		if useColor {
			sev = severityColor(d.Severity).Sprint(sev)
		}
		line := fmt.Sprintf("%s [%s]", sev, d.Code.ID())
		if d.Subject != "" {
			line += " " + d.Subject
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", line, d.Message); err != nil {
			return err
		}
	}
	return nil
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

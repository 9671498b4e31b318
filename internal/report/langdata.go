package report

import (
	"fmt"

	"phonosim/internal/dataset"
)

// LangData prints one language's metadata in header order.
func (p *Printer) LangData(code string, header []string, row dataset.LangData) error {
	if p.Format == FormatJSON {
		return p.json(row)
	}
	if _, err := fmt.Fprintln(p.W, p.heading(code)); err != nil {
		return err
	}
	kw := columnWidth(0, header...)
	for _, k := range header {
		v, ok := row[k]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(p.W, "  %s  %s\n", pad(k, kw), v); err != nil {
			return err
		}
	}
	return nil
}

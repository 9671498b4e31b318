package main

import (
	"strings"

	"github.com/spf13/cobra"

	"phonosim/internal/diag"
	"phonosim/internal/rank"
)

var langdataCmd = &cobra.Command{
	Use:   "langdata <code>",
	Short: "Show the metadata row of a language",
	Args:  cobra.ExactArgs(1),
	RunE:  runLangData,
}

func runLangData(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	tbl, header, err := s.languages()
	if err != nil {
		return err
	}
	code := args[0]
	row, ok := tbl[code]
	if !ok {
		known := make(map[string]string, len(tbl))
		for c, r := range tbl {
			known[c] = r["Name"]
		}
		msg := "no metadata for this code"
		if sugg := rank.Suggest(code, known, 3); len(sugg) > 0 {
			msg += "; did you mean " + strings.Join(sugg, ", ") + "?"
		}
		diag.Warn(s.reporter(), diag.RankUnknownLanguage, code, msg)
		return nil
	}
	return s.out.LangData(code, header, row)
}

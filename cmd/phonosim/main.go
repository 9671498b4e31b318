package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"phonosim/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "phonosim",
	Short:         "Phoneme inventory and script similarity toolkit",
	Long:          `phonosim ranks languages by phoneme-inventory similarity and groups corpora by writing system`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(langdataCmd)
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(closestCmd)
	rootCmd.AddCommand(charcompareCmd)
	rootCmd.AddCommand(sizesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to phonosim.toml (default: search upwards from the working directory)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("format", "text", "output format (text|json)")
	pf.Bool("quiet", false, "suppress diagnostics on stderr")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep")
	pf.String("ui", "auto", "progress view for corpus scans (auto|on|off)")

	pf.String("trace", "", "write trace events to file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|stage|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")

	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

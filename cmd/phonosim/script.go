package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"phonosim/internal/diag"
	"phonosim/internal/report"
	"phonosim/internal/script"
	"phonosim/internal/trace"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster [flags]",
	Short: "Group corpora by character-frequency similarity",
	Args:  cobra.NoArgs,
	RunE:  runCluster,
}

var closestCmd = &cobra.Command{
	Use:   "closest [flags] <lang>",
	Short: "Rank corpora by script similarity to <lang>",
	Args:  cobra.ExactArgs(1),
	RunE:  runClosest,
}

var charcompareCmd = &cobra.Command{
	Use:   "charcompare [flags] <lang1> <lang2>",
	Short: "Show each shared character's share of the script similarity",
	Args:  cobra.ExactArgs(2),
	RunE:  runCharCompare,
}

var sizesCmd = &cobra.Command{
	Use:   "sizes [flags]",
	Short: "List corpora by line count",
	Args:  cobra.NoArgs,
	RunE:  runSizes,
}

func init() {
	for _, c := range []*cobra.Command{clusterCmd, closestCmd, charcompareCmd, sizesCmd} {
		c.Flags().String("dump", "", "read distributions from this dump instead of the corpora")
		c.Flags().Bool("refresh", false, "rescan the corpora even when cached distributions exist")
	}
	clusterCmd.Flags().Int("min-size", 0, "smallest corpus (in lines) that is clustered (default from config)")
	clusterCmd.Flags().Float64("threshold", 0, "similarity a language must exceed to join a cluster (default from config)")
	closestCmd.Flags().IntP("top", "k", 0, "number of results (0 = config closest_k)")
}

func distSourceFlags(cmd *cobra.Command) (distSource, error) {
	dump, err := cmd.Flags().GetString("dump")
	if err != nil {
		return distSource{}, fmt.Errorf("failed to get dump flag: %w", err)
	}
	refresh, err := cmd.Flags().GetBool("refresh")
	if err != nil {
		return distSource{}, fmt.Errorf("failed to get refresh flag: %w", err)
	}
	return distSource{dumpFile: dump, refresh: refresh}, nil
}

func openWithDists(cmd *cobra.Command) (*session, map[string]script.Distribution, map[string]int, error) {
	s, err := openSession(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	src, err := distSourceFlags(cmd)
	if err != nil {
		s.close()
		return nil, nil, nil, err
	}
	dists, sizes, err := s.distributions(src)
	if err != nil {
		s.close()
		return nil, nil, nil, err
	}
	return s, dists, sizes, nil
}

func runCluster(cmd *cobra.Command, _ []string) error {
	s, dists, sizes, err := openWithDists(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	opts := script.Options{
		MinSize:   s.cfg.Cluster.MinSize,
		Threshold: s.cfg.Cluster.Threshold,
		Reporter:  s.reporter(),
	}
	if cmd.Flags().Changed("min-size") {
		if opts.MinSize, err = cmd.Flags().GetInt("min-size"); err != nil {
			return fmt.Errorf("failed to get min-size flag: %w", err)
		}
		if opts.MinSize < 0 {
			return fmt.Errorf("--min-size must be >= 0")
		}
	}
	if cmd.Flags().Changed("threshold") {
		if opts.Threshold, err = cmd.Flags().GetFloat64("threshold"); err != nil {
			return fmt.Errorf("failed to get threshold flag: %w", err)
		}
		if opts.Threshold < 0 {
			return fmt.Errorf("--threshold must be >= 0")
		}
	}

	var res *script.Result
	err = s.stage("cluster", func(ctx context.Context) error {
		tracer := trace.FromContext(ctx)
		parent := trace.CurrentSpan(ctx)
		opts.Progress = func(lang string, cluster int, score float64) {
			trace.Point(tracer, trace.ScopeLanguage, "lang:"+lang,
				"cluster "+strconv.Itoa(cluster)+" score "+strconv.FormatFloat(score, 'g', 6, 64), parent)
		}
		res = script.Run(dists, sizes, opts)
		return nil
	})
	if err != nil {
		return err
	}

	// names are cosmetic; a missing size table only loses them
	names := map[string]string{}
	if sizeTbl, err := s.sizeTable(); err == nil {
		for _, row := range sizeTbl.Rows() {
			names[row.ISO3] = row.Name
		}
	}
	return s.out.Clusters(res, names)
}

func runClosest(cmd *cobra.Command, args []string) error {
	s, dists, _, err := openWithDists(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	k, err := cmd.Flags().GetInt("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
	}
	if k == 0 {
		k = s.cfg.Cluster.ClosestK
	}
	lang := args[0]
	ns, ok := script.Closest(lang, dists, k)
	if !ok {
		diag.Warn(s.reporter(), diag.ScriptMissingDist, lang, "no corpus for this language")
	}
	return s.out.Neighbours(lang, ns)
}

func runCharCompare(cmd *cobra.Command, args []string) error {
	s, dists, _, err := openWithDists(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	a, b := args[0], args[1]
	for _, lang := range []string{a, b} {
		if _, ok := dists[lang]; !ok {
			diag.Warn(s.reporter(), diag.ScriptMissingDist, lang, "no corpus for this language")
		}
	}
	p, q := script.Normalize(dists[a]), script.Normalize(dists[b])
	return s.out.Contributions(a, b, script.Contributions(p, q), script.Similarity(p, q))
}

func runSizes(cmd *cobra.Command, _ []string) error {
	s, _, sizes, err := openWithDists(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return s.out.Sizes(report.SortSizes(sizes))
}

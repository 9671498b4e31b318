package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"phonosim/internal/features"
	"phonosim/internal/rank"
	"phonosim/internal/report"
	"phonosim/internal/score"
	"phonosim/internal/simcache"
)

var rankCmd = &cobra.Command{
	Use:   "rank [flags] <lang>",
	Short: "Rank languages by phoneme-inventory similarity to <lang>",
	Args:  cobra.ExactArgs(1),
	RunE:  runRank,
}

var compareCmd = &cobra.Command{
	Use:   "compare [flags] <lang1> <lang2>",
	Short: "Score two languages' phoneme inventories",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

var diffCmd = &cobra.Command{
	Use:   "diff [flags] <lang1> <lang2>",
	Short: "List shared and exclusive phonemes of two languages",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	rankCmd.Flags().String("scorer", "", "similarity strategy (overlap|f1|features); default from config")
	rankCmd.Flags().IntP("top", "k", 0, "number of results (0 = config top_k)")
	rankCmd.Flags().Bool("high-resource", false, "only rank high-resource languages")
	rankCmd.Flags().Int64("threshold", 0, "corpus size a language must exceed to be high-resource (default from config)")
	rankCmd.Flags().Bool("script", false, "annotate results with script distance")
	rankCmd.Flags().String("dump", "", "read script distributions from this dump instead of the corpora")
	rankCmd.Flags().Int("jobs", 0, "parallel scoring workers (0 = config, then GOMAXPROCS)")

	compareCmd.Flags().String("scorer", "", "similarity strategy (overlap|f1|features); default from config")

	diffCmd.Flags().Bool("runes", false, "also split the first language's phonemes into code points")
}

// scorerFor builds the strategy named by the --scorer flag or the config,
// loading the feature table only when it is needed.
func scorerFor(s *session, cmd *cobra.Command) (score.Scorer, *simcache.Cache, error) {
	name, err := cmd.Flags().GetString("scorer")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get scorer flag: %w", err)
	}
	if name == "" {
		name = s.cfg.Rank.Scorer
	}
	kind, err := score.ParseKind(name)
	if err != nil {
		return nil, nil, err
	}
	deps := score.Deps{Reporter: s.reporter()}
	if kind == score.KindFeatures {
		var tbl *features.Table
		tbl, err = s.featureTable()
		if err != nil {
			return nil, nil, err
		}
		deps.Table = tbl
		deps.Cache = simcache.New(4096)
	}
	sc, err := score.New(kind, deps)
	return sc, deps.Cache, err
}

func newEngine(s *session) (*rank.Engine, error) {
	invs, names, err := s.inventories()
	if err != nil {
		return nil, err
	}
	return &rank.Engine{Inventories: invs, Names: names, Reporter: s.reporter()}, nil
}

func runRank(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	flags := cmd.Flags()
	k, err := flags.GetInt("top")
	if err != nil {
		return fmt.Errorf("failed to get top flag: %w", err)
	}
	if k == 0 {
		k = s.cfg.Rank.TopK
	}
	highOnly, err := flags.GetBool("high-resource")
	if err != nil {
		return fmt.Errorf("failed to get high-resource flag: %w", err)
	}
	threshold := s.cfg.Rank.HighResourceThreshold
	if flags.Changed("threshold") {
		if threshold, err = flags.GetInt64("threshold"); err != nil {
			return fmt.Errorf("failed to get threshold flag: %w", err)
		}
		if threshold < 0 {
			return fmt.Errorf("--threshold must be >= 0")
		}
	}
	withScript, err := flags.GetBool("script")
	if err != nil {
		return fmt.Errorf("failed to get script flag: %w", err)
	}
	dumpFile, err := flags.GetString("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = s.jobs()
	}

	sc, cache, err := scorerFor(s, cmd)
	if err != nil {
		return err
	}
	engine, err := newEngine(s)
	if err != nil {
		return err
	}
	if highOnly || withScript {
		sizes, err := s.sizeTable()
		if err != nil {
			return err
		}
		if highOnly {
			engine.HighResource = sizes.HighResource(threshold)
		}
		engine.Aliases = sizes
	}
	if withScript {
		engine.Dists, _, err = s.distributions(distSource{dumpFile: dumpFile})
		if err != nil {
			return err
		}
	}

	query := args[0]
	var results []rank.Result
	err = s.stage("rank", func(ctx context.Context) error {
		results, err = engine.Rank(ctx, rank.Query{
			Lang:             query,
			Scorer:           sc,
			HighResourceOnly: highOnly,
			K:                k,
			ScriptDistance:   withScript,
			Jobs:             jobs,
		})
		return err
	})
	if err != nil {
		return err
	}
	if s.timings {
		printCacheStats(cmd.ErrOrStderr(), cache)
	}
	return s.out.Ranking(query, engine.Names[query], sc.Name(), results)
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	sc, _, err := scorerFor(s, cmd)
	if err != nil {
		return err
	}
	engine, err := newEngine(s)
	if err != nil {
		return err
	}
	v, err := engine.Compare(args[0], args[1], sc)
	if err != nil {
		return err
	}
	var pr *report.PrecisionRecall
	if sc.Name() == string(score.KindF1) {
		a, _ := engine.Inventories.Get(args[0])
		b, _ := engine.Inventories.Get(args[1])
		if p, r, ok := score.PrecisionRecall(a, b); ok {
			pr = &report.PrecisionRecall{Precision: p, Recall: r}
		}
	}
	return s.out.Compare(args[0], args[1], sc.Name(), v, pr)
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	runes, err := cmd.Flags().GetBool("runes")
	if err != nil {
		return fmt.Errorf("failed to get runes flag: %w", err)
	}
	engine, err := newEngine(s)
	if err != nil {
		return err
	}
	return s.out.Diff(args[0], args[1], engine.Diff(args[0], args[1]), runes)
}

package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"phonosim/internal/config"
	"phonosim/internal/corpus"
	"phonosim/internal/dataset"
	"phonosim/internal/diag"
	"phonosim/internal/distcache"
	"phonosim/internal/features"
	"phonosim/internal/observ"
	"phonosim/internal/phoneme"
	"phonosim/internal/pipeline"
	"phonosim/internal/report"
	"phonosim/internal/resource"
	"phonosim/internal/script"
	"phonosim/internal/trace"
)

const cacheApp = "phonosim"

// session is the per-command state shared by every subcommand: resolved
// config, output printer, diagnostics and timings.
type session struct {
	cmd     *cobra.Command
	ctx     context.Context
	cfg     config.Config
	out     *report.Printer
	bag     *diag.Bag
	timer   *observ.Timer
	color   bool
	quiet   bool
	timings bool
	ui      uiMode

	cleanups []func()
}

// openSession reads the persistent flags, loads the config and starts
// tracing and profiling. The caller must defer close.
func openSession(cmd *cobra.Command) (*session, error) {
	root := cmd.Root().PersistentFlags()

	colorStr, err := root.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := applyColorMode(colorStr)
	if err != nil {
		return nil, err
	}
	formatStr, err := root.GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := root.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	uiStr, err := root.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return nil, err
	}
	configPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Discover(".", configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	s := &session{
		cmd:     cmd,
		cfg:     cfg,
		out:     &report.Printer{W: cmd.OutOrStdout(), Format: format, Color: useColor && format == report.FormatText},
		bag:     diag.NewBag(maxDiagnostics),
		timer:   observ.NewTimer(),
		color:   useColor,
		quiet:   quiet,
		timings: timings,
		ui:      mode,
	}

	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	s.cleanups = append(s.cleanups, stopTrace)
	stopProf, err := setupProfiling(cmd)
	if err != nil {
		stopTrace()
		return nil, err
	}
	s.cleanups = append(s.cleanups, stopProf)

	ctx, span := trace.Start(cmd.Context(), trace.ScopeRun, cmd.Name())
	s.ctx = ctx
	s.cleanups = append(s.cleanups, func() { span.End("") })
	return s, nil
}

// close reports diagnostics and timings to stderr and stops tracing and
// profiling.
func (s *session) close() {
	errOut := s.cmd.ErrOrStderr()
	if !s.quiet {
		full := s.bag.Len() >= s.bag.Cap()
		s.bag.Dedup()
		s.bag.Sort()
		if err := report.Diagnostics(errOut, s.bag, s.out.Format, s.color); err != nil {
			fmt.Fprintf(errOut, "diagnostics: %v\n", err)
		}
		if full && s.out.Format == report.FormatText {
			fmt.Fprintf(errOut, "diagnostic limit %d reached; later diagnostics were dropped (see --max-diagnostics)\n", s.bag.Cap())
		}
	}
	if s.timings {
		printTimings(errOut, s.timer)
	}
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
}

func (s *session) reporter() diag.Reporter {
	return diag.BagReporter{Bag: s.bag}
}

// stage times fn and wraps it in a trace span.
func (s *session) stage(name string, fn func(ctx context.Context) error) error {
	ctx, span := trace.Start(s.ctx, trace.ScopeStage, name)
	err := s.timer.Time(name, func() error { return fn(ctx) })
	if err != nil {
		trace.Error(trace.FromContext(ctx), trace.ScopeStage, name, err, span.ID())
		span.End("failed")
		return err
	}
	span.End("")
	return nil
}

func (s *session) inventories() (invs phoneme.Inventories, names phoneme.Names, err error) {
	path := s.cfg.Resolve(s.cfg.Data.Inventories)
	err = s.stage("load inventories", func(context.Context) error {
		invs, names, err = dataset.LoadInventories(path)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load inventories: %w", err)
	}
	return invs, names, nil
}

func (s *session) featureTable() (tbl *features.Table, err error) {
	path := s.cfg.Resolve(s.cfg.Data.Features)
	err = s.stage("load features", func(context.Context) error {
		tbl, err = dataset.LoadFeatures(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}
	return tbl, nil
}

func (s *session) sizeTable() (tbl *resource.Table, err error) {
	path := s.cfg.Resolve(s.cfg.Data.Sizes)
	err = s.stage("load sizes", func(context.Context) error {
		tbl, err = dataset.LoadSizes(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load sizes: %w", err)
	}
	return tbl, nil
}

func (s *session) languages() (tbl dataset.LangTable, header []string, err error) {
	path := s.cfg.Resolve(s.cfg.Data.Languages)
	err = s.stage("load languages", func(context.Context) error {
		tbl, header, err = dataset.LoadLanguageData(path)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load languages: %w", err)
	}
	return tbl, header, nil
}

func (s *session) jobs() int {
	if s.cfg.Rank.Jobs > 0 {
		return s.cfg.Rank.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// distSource selects where distributions come from.
type distSource struct {
	dumpFile string // read this dump instead of scanning
	refresh  bool   // ignore the cache and rescan
}

// distributions returns the character distributions and corpus sizes,
// from a dump file, the on-disk cache or a fresh scan, in that order.
func (s *session) distributions(src distSource) (dists map[string]script.Distribution, sizes map[string]int, err error) {
	if src.dumpFile != "" {
		err = s.stage("read dump", func(context.Context) error {
			p, err := distcache.ReadFile(src.dumpFile)
			if err != nil {
				return err
			}
			dists, sizes, err = p.Dists()
			return err
		})
		return dists, sizes, err
	}

	dir := s.cfg.Resolve(s.cfg.Data.Corpora)
	prefix := s.cfg.Data.CorpusPrefix
	files, err := corpus.List(dir, prefix)
	if err != nil {
		return nil, nil, err
	}
	paths := make([]string, len(files))
	langs := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
		langs[i] = f.Lang
	}
	key, err := distcache.Fingerprint(prefix, paths)
	if err != nil {
		return nil, nil, err
	}

	cache, err := distcache.Open(s.cfg.Resolve(s.cfg.Cache.Dir), cacheApp)
	if err != nil {
		diag.Warn(s.reporter(), diag.IOCacheStale, dir, "cache unavailable: "+err.Error())
		cache = nil
	}
	if !src.refresh {
		p, ok, err := cache.Get(key)
		switch {
		case err != nil:
			diag.Info(s.reporter(), diag.IOCacheStale, dir, "ignoring cached distributions: "+err.Error())
		case ok:
			trace.Point(trace.FromContext(s.ctx), trace.ScopeStage, "cache hit", key.String(), trace.CurrentSpan(s.ctx))
			return p.Dists()
		}
	}

	res, err := s.scan(dir, prefix, langs)
	if err != nil {
		return nil, nil, err
	}
	payload, err := distcache.FromDists(key, prefix, res.Dists, res.Sizes)
	if err != nil {
		return nil, nil, err
	}
	if err := cache.Put(key, payload); err != nil {
		diag.Warn(s.reporter(), diag.IOCacheStale, dir, "could not write cache: "+err.Error())
	}
	return res.Dists, res.Sizes, nil
}

func (s *session) scan(dir, prefix string, langs []string) (res *corpus.Result, err error) {
	err = s.stage("scan corpora", func(ctx context.Context) error {
		scan := func(sink pipeline.ProgressSink) (*corpus.Result, error) {
			return corpus.ScanDir(ctx, dir, prefix, s.jobs(), sink)
		}
		if s.out.Format == report.FormatText && shouldUseTUI(s.ui) {
			res, err = runScanWithUI(ctx, "scanning "+strconv.Itoa(len(langs))+" corpora", langs, scan)
		} else {
			res, err = scan(nil)
		}
		return err
	})
	return res, err
}

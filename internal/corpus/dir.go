package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"phonosim/internal/pipeline"
	"phonosim/internal/script"
	"phonosim/internal/trace"
)

// DefaultPrefix names corpus files as "wikidata.<lang>".
const DefaultPrefix = "wikidata."

// File is one corpus file in a directory.
type File struct {
	Lang string
	Path string
}

// Result holds every scanned corpus keyed by language.
type Result struct {
	Dists map[string]script.Distribution
	Sizes map[string]int
}

// List returns the corpus files in dir sorted by language. A file belongs to
// language L when its name is prefix+L and L has no further dots.
func List(dir, prefix string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lang, ok := strings.CutPrefix(name, prefix)
		if !ok || lang == "" || strings.Contains(lang, ".") {
			continue
		}
		files = append(files, File{Lang: lang, Path: filepath.Join(dir, name)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Lang < files[j].Lang })
	return files, nil
}

// ScanFile scans one corpus file.
func ScanFile(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()
	st, err := Scan(f)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// ScanDir scans every corpus file under dir with at most jobs files in
// flight (jobs <= 0 means GOMAXPROCS). Progress is reported to sink per file.
// The first failure cancels the remaining scans.
func ScanDir(ctx context.Context, dir, prefix string, jobs int, sink pipeline.ProgressSink) (*Result, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	ctx, span := trace.Start(ctx, trace.ScopeStage, "scan")
	files, err := List(dir, prefix)
	if err != nil {
		span.End("failed")
		return nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))
	defer span.End("")

	for _, f := range files {
		pipeline.Emit(sink, pipeline.Event{Item: f.Lang, Stage: pipeline.StageScan, Status: pipeline.StatusQueued})
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Stats, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			begin := time.Now()
			pipeline.Emit(sink, pipeline.Event{Item: f.Lang, Stage: pipeline.StageScan, Status: pipeline.StatusWorking})
			st, err := ScanFile(f.Path)
			elapsed := time.Since(begin)
			if err != nil {
				trace.Error(tracer, trace.ScopeLanguage, "lang:"+f.Lang, err, parent)
				pipeline.Emit(sink, pipeline.Event{Item: f.Lang, Stage: pipeline.StageScan, Status: pipeline.StatusError, Err: err, Elapsed: elapsed})
				return err
			}
			results[i] = st
			trace.Point(tracer, trace.ScopeLanguage, "lang:"+f.Lang, fmt.Sprintf("%d lines, %d chars", st.Lines, len(st.Dist)), parent)
			pipeline.Emit(sink, pipeline.Event{Item: f.Lang, Stage: pipeline.StageScan, Status: pipeline.StatusDone, Elapsed: elapsed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Dists: make(map[string]script.Distribution, len(files)),
		Sizes: make(map[string]int, len(files)),
	}
	for i, f := range files {
		res.Dists[f.Lang] = results[i].Dist
		res.Sizes[f.Lang] = results[i].Lines
	}
	return res, nil
}

// Package trace is the structured logging layer of phonosim.
//
// Long batch runs (loading tables, scanning corpora, ranking, clustering) emit
// span and point events so that slow stages and odd inputs can be found
// without a debugger.
//
// # Usage
//
//	phonosim rank kor --trace=- --trace-level=detail
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only failures
//   - LevelStage: run and stage boundaries
//   - LevelDetail: per-language events
//   - LevelDebug: everything, including per-pair events
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "score", parentID)
//	defer span.End("")
package trace

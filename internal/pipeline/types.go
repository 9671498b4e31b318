// Package pipeline carries progress events from long batch stages (corpus
// scanning, ranking, clustering) to whatever is displaying them.
package pipeline

import "time"

// Stage describes a high-level batch phase.
type Stage string

const (
	// StageLoad reads the tab-separated tables.
	StageLoad Stage = "load"
	// StageScan builds character distributions from raw corpora.
	StageScan Stage = "scan"
	// StageScore compares the query against candidate languages.
	StageScore Stage = "score"
	// StageCluster assigns languages to script clusters.
	StageCluster Stage = "cluster"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one item (a corpus file, a language) or for the
// whole stage when Item is empty.
type Event struct {
	Item    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; scanners emit from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit sends ev to sink when sink is non-nil.
func Emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

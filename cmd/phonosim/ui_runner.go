package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"phonosim/internal/corpus"
	"phonosim/internal/pipeline"
	"phonosim/internal/ui"
)

type scanOutcome struct {
	result *corpus.Result
	err    error
}

// runScanWithUI runs a corpus scan while a Bubble Tea view shows per-language
// progress.
func runScanWithUI(ctx context.Context, title string, langs []string, scan func(pipeline.ProgressSink) (*corpus.Result, error)) (*corpus.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		res, err := scan(pipeline.ChannelSink{Ch: events})
		outcomeCh <- scanOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, langs, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the view may quit before the scan ends; keep the scanner from blocking
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

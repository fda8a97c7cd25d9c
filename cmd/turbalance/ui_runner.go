package main

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"turbalance/internal/driver"
	"turbalance/internal/source"
	"turbalance/internal/ui"
)

var errAborted = errors.New("check aborted")

type checkDirOutcome struct {
	fileSet *source.FileSet
	results []driver.Result
	err     error
}

// runCheckDirWithUI runs CheckDir in the background while the progress view
// consumes its events. The view quits when the events channel is closed;
// quitting it early cancels the run.
func runCheckDirWithUI(ctx context.Context, title, dir string, opts driver.Options, jobs int) (*source.FileSet, []driver.Result, error) {
	files, err := driver.ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- checkDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, uiErr := program.Run()
	aborted := uiErr == nil && ui.Aborted(final)
	if uiErr != nil || aborted {
		cancel()
		// дочитываем события, чтобы воркеры не заблокировались на канале
		for range events {
		}
	}
	outcome := <-outcomeCh
	switch {
	case uiErr != nil:
		return outcome.fileSet, outcome.results, uiErr
	case aborted:
		return outcome.fileSet, outcome.results, errAborted
	}
	return outcome.fileSet, outcome.results, outcome.err
}

package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithProgress drives the progress view while work runs on a
// goroutine. work receives a channel it must send a StageQueued..StageDone
// (or StageError) Event on for each header in headers, and must close the
// channel when it returns. RunWithProgress blocks until both the UI and
// work have finished, then returns work's error.
func RunWithProgress(title string, headers []string, work func(events chan<- Event) error) error {
	events := make(chan Event, 256)
	errCh := make(chan error, 1)

	go func() {
		errCh <- work(events)
	}()

	model := NewProgressModel(title, headers, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	workErr := <-errCh
	if uiErr != nil {
		return uiErr
	}
	return workErr
}

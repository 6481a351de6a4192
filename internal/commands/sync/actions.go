package sync

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/pokenest/internal/catalog"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

// startSync runs the controller until the first page is ready
func (m Model) startSync() tea.Cmd {
	return func() tea.Msg {
		loggy.Debug("Starting sync from TUI", "initial_only", m.initialOnly)
		result, err := m.controller.Sync(m.ctx)
		return syncStartedMsg{result: result, err: err}
	}
}

// waitForStatus delivers the next status update
func (m Model) waitForStatus() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.updates
		if !ok {
			return nil
		}
		return statusMsg(s)
	}
}

// waitForDone blocks until the run has fully ended
func waitForDone(result *catalog.Result) tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{err: result.Wait(context.Background())}
	}
}

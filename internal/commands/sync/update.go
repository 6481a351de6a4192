package sync

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tildaslashalef/pokenest/internal/catalog"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(msg.Width-10, 10)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keymap.Stop):
			if !m.finished {
				m.cancelled = true
				m.cancel()
			}
		}

	case spinner.TickMsg:
		if !m.finished {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		m.progress = model.(progress.Model)
		cmds = append(cmds, cmd)

	case statusMsg:
		m.status = catalog.Status(msg)
		cmds = append(cmds, m.progress.SetPercent(m.percent()))
		if !m.finished {
			cmds = append(cmds, m.waitForStatus())
		}

	case syncStartedMsg:
		if msg.err != nil {
			m.finished = true
			if fetch.Reportable(msg.err) {
				m.err = msg.err
			}
			return m, nil
		}
		m.result = msg.result
		loggy.Info("First page ready", "run_id", msg.result.RunID, "path", msg.result.Path, "records", len(msg.result.Records))
		if m.initialOnly {
			m.cancel()
		}
		cmds = append(cmds, waitForDone(msg.result))

	case syncDoneMsg:
		m.finished = true
		m.status = m.controller.Status()
		if msg.err != nil {
			m.err = msg.err
			loggy.Error("Sync finished with error", "error", msg.err)
		}
		cmds = append(cmds, m.progress.SetPercent(m.percent()))
	}

	return m, tea.Batch(cmds...)
}

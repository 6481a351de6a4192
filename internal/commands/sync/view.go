package sync

import (
	"fmt"
	"strings"

	"github.com/tildaslashalef/pokenest/internal/catalog"
)

var stateLabels = map[catalog.State]string{
	catalog.StateIdle:               "Idle",
	catalog.StateCheckingRemote:     "Checking remote count",
	catalog.StateUsingCache:         "Using cached records",
	catalog.StateFetchingInitial:    "Fetching first page",
	catalog.StateReady:              "First page ready",
	catalog.StateBackgroundFetching: "Fetching remaining records",
	catalog.StateFailed:             "Failed",
}

// View renders the sync TUI.
func (m Model) View() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %s", m.err)) + "\n\n" +
			m.styles.Subtle.Render("Press q to quit.") + "\n"
	}

	var sb strings.Builder

	if m.finished {
		switch {
		case m.result == nil:
			sb.WriteString(m.styles.Warning.Render("Sync stopped"))
		case m.status.Cancelled:
			sb.WriteString(m.styles.Warning.Render("Sync stopped after the first page"))
		default:
			sb.WriteString(m.styles.Success.Render("Sync complete"))
		}
		sb.WriteString("\n\n")
		sb.WriteString(m.summary())
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Subtle.Render("Press q to quit."))
		sb.WriteString("\n")
		return sb.String()
	}

	label := stateLabels[m.status.State]
	if label == "" {
		label = string(m.status.State)
	}
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("%s %s...", m.spinner.View(), label)))
	sb.WriteString("\n\n")

	if m.status.RemoteCount > 0 {
		sb.WriteString(m.progress.View())
		sb.WriteString("\n")
		sb.WriteString(m.styles.StatusText.Render(fmt.Sprintf("%d / %d records", m.status.Loaded, m.status.RemoteCount)))
		if m.status.Pending > 0 {
			sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("  (%d pending)", m.status.Pending)))
		}
		sb.WriteString("\n")
	}
	if m.cancelled {
		sb.WriteString(m.styles.Warning.Render("Stopping..."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keymap))
	return sb.String()
}

func (m Model) summary() string {
	lines := []string{
		fmt.Sprintf("Path:          %s", pathLabel(m.status.Path)),
		fmt.Sprintf("Remote count:  %d", m.status.RemoteCount),
		fmt.Sprintf("Records ready: %d", m.status.Loaded),
	}
	if m.result != nil {
		lines = append(lines, fmt.Sprintf("Run:           %s", m.result.RunID))
	}
	return m.styles.Box.Render(strings.Join(lines, "\n"))
}

func pathLabel(p catalog.Path) string {
	switch p {
	case catalog.PathCache:
		return "cache (counts match)"
	case catalog.PathFetch:
		return "fetch"
	default:
		return "-"
	}
}

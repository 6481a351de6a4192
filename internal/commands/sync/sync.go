// Package sync is the interactive view of a catalog sync run
package sync

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tildaslashalef/pokenest/internal/catalog"
	"github.com/tildaslashalef/pokenest/internal/loggy"
)

// Run shows the sync TUI until the run ends and the user quits. With
// initialOnly the run stops once the first page is ready.
func Run(ctx context.Context, controller *catalog.Controller, initialOnly bool) error {
	model := NewModel(ctx, controller, initialOnly)
	defer model.Close()

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		loggy.Error("Error running sync TUI", "error", err)
		return fmt.Errorf("error running sync UI: %w", err)
	}

	loggy.Info("Sync TUI finished")
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}

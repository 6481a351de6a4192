package sync

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tildaslashalef/pokenest/internal/catalog"
)

// Model is the Bubble Tea model for the sync TUI
type Model struct {
	controller  *catalog.Controller
	ctx         context.Context
	cancel      context.CancelFunc
	initialOnly bool
	updates     <-chan catalog.Status
	unsubscribe func()

	keymap   KeyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model
	styles   Styles

	// UI state
	width     int
	status    catalog.Status
	result    *catalog.Result
	err       error
	finished  bool
	cancelled bool
}

// NewModel creates the sync model. The run is bound to ctx; quitting the
// TUI cancels it.
func NewModel(ctx context.Context, controller *catalog.Controller, initialOnly bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(DefaultTheme.Secondary)

	ctx, cancel := context.WithCancel(ctx)
	updates, unsubscribe := controller.Subscribe()

	return Model{
		controller:  controller,
		ctx:         ctx,
		cancel:      cancel,
		initialOnly: initialOnly,
		updates:     updates,
		unsubscribe: unsubscribe,
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		spinner:     s,
		progress:    progress.New(progress.WithDefaultGradient()),
		styles:      DefaultStyles(),
		status:      controller.Status(),
	}
}

// Init starts the spinner, the run and the status subscription
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startSync(), m.waitForStatus())
}

// Close releases the status subscription and cancels a run still in flight
func (m Model) Close() {
	m.unsubscribe()
	m.cancel()
}

// Err returns the error the run ended with, if any
func (m Model) Err() error {
	return m.err
}

// percent returns the share of remote records that are loaded
func (m Model) percent() float64 {
	if m.status.RemoteCount <= 0 {
		return 0
	}
	return min(float64(m.status.Loaded)/float64(m.status.RemoteCount), 1)
}

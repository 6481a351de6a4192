package sync

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette of the sync TUI
type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	TextDim   lipgloss.AdaptiveColor
}

// DefaultTheme is a Gruvbox-inspired palette
var DefaultTheme = Theme{
	Primary:   lipgloss.AdaptiveColor{Light: "#b8bb26", Dark: "#b8bb26"},
	Secondary: lipgloss.AdaptiveColor{Light: "#fe8019", Dark: "#fe8019"},
	Success:   lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"},
	Warning:   lipgloss.AdaptiveColor{Light: "#d79921", Dark: "#fabd2f"},
	Error:     lipgloss.AdaptiveColor{Light: "#cc241d", Dark: "#fb4934"},
	Text:      lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#fbf1c7"},
	TextDim:   lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#a89984"},
}

// Styles contains predefined styles for the TUI
type Styles struct {
	Title      lipgloss.Style
	StatusText lipgloss.Style
	Subtle     lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Box        lipgloss.Style
}

// DefaultStyles returns default styles for the TUI
func DefaultStyles() Styles {
	theme := DefaultTheme
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(theme.Text),
		StatusText: lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtle:     lipgloss.NewStyle().Foreground(theme.TextDim),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		Warning:    lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		Box:        lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.TextDim).Padding(0, 1),
	}
}

// Package ui renders turn results, actions and health reports for the
// terminal.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the terminal colour palette.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Accent:    lipgloss.Color("#F59E0B"), // Amber

		Success: lipgloss.Color("#10B981"), // Emerald
		Warning: lipgloss.Color("#F59E0B"), // Amber
		Error:   lipgloss.Color("#EF4444"), // Red
		Muted:   lipgloss.Color("#9CA3AF"), // Gray
	}
}

// Styles contains the styled components used by the CLI.
type Styles struct {
	Heading lipgloss.Style
	Thought lipgloss.Style

	ActionName  lipgloss.Style
	ActionArgs  lipgloss.Style
	ActionBox   lipgloss.Style
	ParamName   lipgloss.Style
	Termination lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Command lipgloss.Style
}

// NewStyles creates styled components from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Heading: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Thought: lipgloss.NewStyle().
			PaddingLeft(2),

		ActionName: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		ActionArgs: lipgloss.NewStyle().
			Foreground(t.Muted),

		ActionBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1).
			MarginLeft(2),

		ParamName: lipgloss.NewStyle().
			Foreground(t.Secondary),

		Termination: lipgloss.NewStyle().
			Foreground(t.Success).
			Italic(true),

		Success: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Command: lipgloss.NewStyle().Foreground(t.Secondary),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() Styles {
	return NewStyles(DefaultTheme())
}

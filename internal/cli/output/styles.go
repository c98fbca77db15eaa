package output

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used across commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the standard ANSI color palette used for
// terminal output.
func DefaultStyles() Styles {
	return Styles{
		Header1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Header2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

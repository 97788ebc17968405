package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#2196F3")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#9E9E9E")
	Destructive = lipgloss.Color("#e53935")
)

// Styles groups the lipgloss styles used by the portal views.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Option    lipgloss.Style
	Chosen    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Notice    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(Muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(Accent),
		Label:     lipgloss.NewStyle().Width(20),
		Focused:   lipgloss.NewStyle().Width(20).Bold(true).Foreground(Accent),
		Option:    lipgloss.NewStyle().Foreground(Muted),
		Chosen:    lipgloss.NewStyle().Bold(true),
		Error:     lipgloss.NewStyle().Foreground(Destructive),
		Help:      lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 4),
	}
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"studentportal/portal/dashboard"
	"studentportal/portal/state"
)

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Selected != nil {
		switch msg.String() {
		case "esc", "q", "enter":
			return m.dispatch(state.SelectionCleared{})
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m.dispatch(state.RecordSelected{Index: m.table.Cursor()})
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) dashboardView() string {
	s := m.styles
	if m.state.Selected != nil {
		return dashboard.RenderDetail(m.state.Selected, m.locale) + s.Help.Render("esc close")
	}

	switch msg := dashboard.Status(m.state.Loading, len(m.state.Students)); msg {
	case dashboard.StatusLoading:
		return m.spinner.View() + " " + msg
	case "":
	default:
		return msg + "\n" + s.Help.Render("ctrl+t register • ctrl+c quit")
	}

	return m.table.View() + "\n\n" +
		dashboard.RenderStats(dashboard.Compute(m.state.Students)) + "\n" +
		s.Help.Render("↑↓ move • enter view details • ctrl+t register • ctrl+c quit")
}

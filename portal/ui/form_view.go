package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"studentportal/portal/form"
	"studentportal/portal/state"
)

func (m *Model) focusField(i int) tea.Cmd {
	if len(m.focusable) == 0 {
		return nil
	}
	if i < 0 {
		i = len(m.focusable) - 1
	}
	m.focus = i % len(m.focusable)

	var cmd tea.Cmd
	for name, ti := range m.inputs {
		if name == m.focusable[m.focus].Name {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[name] = ti
	}
	return cmd
}

func (m Model) focused() form.Field {
	return m.focusable[m.focus]
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.focusable) == 0 {
		return m, nil
	}
	switch msg.String() {
	case "ctrl+s":
		return m.dispatch(state.SubmitRequested{})
	case "tab", "down":
		cmd := m.focusField(m.focus + 1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.focusField(m.focus - 1)
		return m, cmd
	}

	f := m.focused()
	switch {
	case f.Kind() == form.KindMultiSelect:
		return m.updateCheckboxes(f, msg)
	case f.HasOptions():
		return m.updateChoice(f, msg)
	case f.Kind() == form.KindFile:
		return m.updateFile(f, msg)
	}
	return m.updateText(f, msg)
}

func (m Model) updateText(f form.Field, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		cmd := m.focusField(m.focus + 1)
		return m, cmd
	}
	ti := m.inputs[f.Name]
	before := ti.Value()
	ti, cmd := ti.Update(msg)
	m.inputs[f.Name] = ti
	if ti.Value() == before {
		return m, cmd
	}
	m, dcmd := m.dispatch(state.FieldChanged{Edit: form.Edit{Name: f.Name, Value: ti.Value()}})
	return m, tea.Batch(cmd, dcmd)
}

func (m Model) updateFile(f form.Field, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ti := m.inputs[f.Name]
	if msg.String() != "enter" {
		var cmd tea.Cmd
		ti, cmd = ti.Update(msg)
		m.inputs[f.Name] = ti
		return m, cmd
	}

	path := strings.TrimSpace(ti.Value())
	if path == "" {
		return m.dispatch(state.FieldChanged{Edit: form.Edit{Name: f.Name}})
	}
	h, err := form.OpenFile(path)
	if err != nil {
		return m.dispatch(state.EditRejected{Err: fmt.Errorf("cannot attach file: %w", err)})
	}
	return m.dispatch(state.FieldChanged{Edit: form.Edit{Name: f.Name, File: h}})
}

// updateChoice handles radio groups and selects: left and right pick the neighbouring option.
func (m Model) updateChoice(f form.Field, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.cursors[f.Name]
	switch msg.String() {
	case "left", "h":
		cur = (cur - 1 + len(f.Options)) % len(f.Options)
	case "right", "l":
		cur = (cur + 1) % len(f.Options)
	case " ", "space", "enter":
	default:
		return m, nil
	}
	m.cursors[f.Name] = cur
	return m.dispatch(state.FieldChanged{Edit: form.Edit{Name: f.Name, Value: f.Options[cur]}})
}

// updateCheckboxes moves between options with left and right and toggles with space.
func (m Model) updateCheckboxes(f form.Field, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.cursors[f.Name]
	switch msg.String() {
	case "left", "h":
		m.cursors[f.Name] = (cur - 1 + len(f.Options)) % len(f.Options)
		return m, nil
	case "right", "l":
		m.cursors[f.Name] = (cur + 1) % len(f.Options)
		return m, nil
	case " ", "space", "x":
		opt := f.Options[cur]
		checked := !m.state.Form.Checked(f.Name, opt)
		return m.dispatch(state.FieldChanged{Edit: form.Edit{Name: f.Name, Value: opt, Checked: checked}})
	}
	return m, nil
}

func (m Model) formView() string {
	s := m.styles
	errs := make(map[string]string, len(m.state.Errors))
	for _, e := range m.state.Errors {
		errs[e.Field] = e.Message
	}

	var b strings.Builder
	for i, f := range m.focusable {
		label := f.Label
		if f.Required() {
			label += " *"
		}
		marker := "  "
		ls := s.Label
		if i == m.focus {
			marker = "› "
			ls = s.Focused
		}
		b.WriteString(marker + ls.Render(label) + m.controlView(f, i == m.focus) + "\n")
		if msg, ok := errs[f.Name]; ok {
			b.WriteString("    " + s.Error.Render(msg) + "\n")
		}
	}
	b.WriteString(s.Help.Render("tab/↑↓ move • ←→ choose • space toggle • ctrl+s register • ctrl+t dashboard • ctrl+c quit"))
	return b.String()
}

func (m Model) controlView(f form.Field, focused bool) string {
	s := m.styles
	if ti, ok := m.inputs[f.Name]; ok {
		view := ti.View()
		if f.Kind() == form.KindFile {
			if v, ok := m.state.Form.Value(f.Name); ok && v.File() != nil {
				view += s.Option.Render(fmt.Sprintf("  attached: %s (%d bytes)", v.File().Name, v.File().Size))
			}
		}
		return view
	}

	current := ""
	if v, ok := m.state.Form.Value(f.Name); ok {
		current = v.Text()
	}
	parts := make([]string, len(f.Options))
	for i, opt := range f.Options {
		var box string
		switch {
		case f.Kind() == form.KindMultiSelect && m.state.Form.Checked(f.Name, opt):
			box = "[x] "
		case f.Kind() == form.KindMultiSelect:
			box = "[ ] "
		case f.Type == form.TypeRadio && opt == current:
			box = "(•) "
		case f.Type == form.TypeRadio:
			box = "( ) "
		}
		text := box + opt
		switch {
		case f.Type == form.TypeSelect && opt == current:
			text = s.Chosen.Render("‹" + opt + "›")
		case focused && m.cursors[f.Name] == i && f.Kind() == form.KindMultiSelect:
			text = s.Chosen.Render(text)
		case f.Type == form.TypeRadio && opt == current:
			text = s.Chosen.Render(text)
		default:
			text = s.Option.Render(text)
		}
		parts[i] = text
	}
	if f.Type == form.TypeSelect && current == "" {
		parts = append([]string{s.Option.Render("Select")}, parts...)
	}
	return strings.Join(parts, "  ")
}

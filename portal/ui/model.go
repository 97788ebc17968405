// Package ui is the interactive terminal portal: the registration form and the live dashboard.
package ui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"studentportal/portal/client"
	"studentportal/portal/dashboard"
	"studentportal/portal/form"
	"studentportal/portal/state"
)

type Page int

const (
	PageForm Page = iota
	PageDashboard
)

// Registrar submits a payload to the registration service.
type Registrar interface {
	Register(ctx context.Context, payload map[string]interface{}) (client.Ack, error)
}

type Options struct {
	Registrar Registrar
	// Results delivers polled lists. It is owned by the caller, who stops the poller on exit.
	Results <-chan dashboard.Result
	Locale  dashboard.Locale
	Fields  []form.Field
	Logger  *logrus.Logger
}

type listMsg dashboard.Result

type pollClosedMsg struct{}

type submitDoneMsg struct {
	ack client.Ack
	err error
}

// Model is the root bubbletea model.
type Model struct {
	state state.State
	page  Page

	registrar Registrar
	results   <-chan dashboard.Result
	locale    dashboard.Locale
	log       *logrus.Logger

	// form controls
	focusable []form.Field
	focus     int
	inputs    map[string]textinput.Model
	cursors   map[string]int

	table   table.Model
	spinner spinner.Model

	width  int
	height int
	styles Styles
}

func New(opts Options) Model {
	fields := opts.Fields
	if fields == nil {
		fields = form.RegistrationFields
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	m := Model{
		state:     state.New(fields),
		page:      PageForm,
		registrar: opts.Registrar,
		results:   opts.Results,
		locale:    opts.Locale,
		log:       logger,
		inputs:    make(map[string]textinput.Model),
		cursors:   make(map[string]int),
		styles:    DefaultStyles(),
	}

	for _, f := range fields {
		if !f.Visible() {
			continue
		}
		m.focusable = append(m.focusable, f)
		if usesInput(f) {
			m.inputs[f.Name] = newInput(f)
		}
	}
	m.focusField(0)

	cols := make([]table.Column, len(dashboard.Columns))
	for i, c := range dashboard.Columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	m.table = table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	return m
}

func usesInput(f form.Field) bool {
	return (f.Kind() == form.KindText && !f.HasOptions()) || f.Kind() == form.KindFile
}

func newInput(f form.Field) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = 40
	switch f.Type {
	case form.TypePassword:
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	case form.TypeDate:
		ti.Placeholder = "YYYY-MM-DD"
	case form.TypeTime:
		ti.Placeholder = "HH:MM"
	case form.TypeMonth:
		ti.Placeholder = "YYYY-MM"
	case form.TypeWeek:
		ti.Placeholder = "YYYY-Www"
	case form.TypeColor:
		ti.Placeholder = "#rrggbb"
		ti.CharLimit = 7
	case form.TypeRange:
		ti.Placeholder = "0-100"
		ti.CharLimit = 3
	case form.TypeFile:
		ti.Placeholder = "path to file, enter to attach"
	}
	return ti
}

// State exposes the current portal state.
func (m Model) State() state.State { return m.state }

func (m Model) Page() Page { return m.page }

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForList())
}

func (m Model) waitForList() tea.Cmd {
	if m.results == nil {
		return nil
	}
	ch := m.results
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return pollClosedMsg{}
		}
		return listMsg(r)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 16; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case listMsg:
		var cmd tea.Cmd
		if msg.Err != nil {
			m, cmd = m.dispatch(state.ListFailed{Err: msg.Err})
		} else {
			m, cmd = m.dispatch(state.ListRefreshed{Students: msg.Students})
		}
		return m, tea.Batch(cmd, m.waitForList())

	case pollClosedMsg:
		return m, nil

	case submitDoneMsg:
		return m.dispatch(state.SubmitCompleted{Ack: msg.ack, Err: msg.err})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.state.Notice != "" {
		switch msg.String() {
		case "enter", "esc", " ", "space":
			return m.dispatch(state.NoticeDismissed{})
		}
		return m, nil
	}

	if msg.String() == "ctrl+t" {
		if m.page == PageForm {
			m.page = PageDashboard
		} else {
			m.page = PageForm
		}
		return m, nil
	}

	if m.page == PageDashboard {
		return m.updateDashboard(msg)
	}
	return m.updateForm(msg)
}

// dispatch runs the reducer and performs the resulting effect.
func (m Model) dispatch(a state.Action) (Model, tea.Cmd) {
	var eff state.Effect
	m.state, eff = state.Reduce(m.state, a)
	m.syncTable()

	switch e := eff.(type) {
	case state.Submit:
		return m, m.submit(e.Payload)
	case state.LogError:
		m.log.WithError(e.Err).Error(e.Op)
	}
	return m, nil
}

func (m Model) submit(payload map[string]interface{}) tea.Cmd {
	r := m.registrar
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		ack, err := r.Register(context.Background(), payload)
		return submitDoneMsg{ack: ack, err: err}
	}
}

func (m *Model) syncTable() {
	rows := make([]table.Row, len(m.state.Students))
	for i, s := range m.state.Students {
		rows[i] = dashboard.Row(s, m.locale)
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) View() string {
	s := m.styles
	title := s.Title.Render("Student Registration Portal")

	tabs := []string{s.Tab.Render("Register"), s.Tab.Render("Dashboard")}
	tabs[m.page] = s.ActiveTab.Render([]string{"Register", "Dashboard"}[m.page])
	header := title + "\n" + tabs[0] + tabs[1] + "\n\n"

	if m.state.Notice != "" {
		return header + s.Notice.Render(m.state.Notice+"\n\n"+s.Option.Render("enter to dismiss"))
	}
	if m.page == PageDashboard {
		return header + m.dashboardView()
	}
	return header + m.formView()
}

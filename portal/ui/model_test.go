package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentportal/portal/client"
	"studentportal/portal/dashboard"
	"studentportal/portal/form"
	"studentportal/portal/model"
)

type fakeRegistrar struct {
	payload map[string]interface{}
	ack     client.Ack
	err     error
}

func (f *fakeRegistrar) Register(ctx context.Context, payload map[string]interface{}) (client.Ack, error) {
	f.payload = payload
	return f.ack, f.err
}

var testFields = []form.Field{
	{Name: "fullName", Label: "Full Name", Type: form.TypeText},
	{Name: "skills", Label: "Skills", Type: form.TypeCheckbox, Options: []string{"HTML", "CSS"}},
	{Name: "course", Label: "Course", Type: form.TypeSelect, Options: []string{"B.Tech", "B.Sc"}},
	{Name: "internalId", Type: form.TypeHidden, Value: "student-123"},
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newTestModel(r Registrar) Model {
	return New(Options{Registrar: r, Fields: testFields, Locale: dashboard.NewLocale("en-US")})
}

func TestModel_DashboardLoadingThenRows(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, key(tea.KeyCtrlT))
	require.Equal(t, PageDashboard, m.Page())
	assert.Contains(t, m.View(), dashboard.StatusLoading)

	m, _ = update(t, m, listMsg{Students: []model.Student{
		{"_id": "a", "fullName": "Ann", "age": "21", "course": "B.Sc", "skills": []interface{}{"HTML", "CSS"}},
	}})

	view := m.View()
	assert.False(t, m.State().Loading)
	assert.Contains(t, view, "Ann")
	assert.Contains(t, view, "Most Popular Course")
	assert.Contains(t, view, "B.Sc")
}

func TestModel_ListFailureShowsEmptyState(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, key(tea.KeyCtrlT))

	m, _ = update(t, m, listMsg{Err: errors.New("connection refused")})

	assert.False(t, m.State().Loading)
	assert.Contains(t, m.View(), dashboard.StatusEmpty)
}

func TestModel_SelectAndCloseDetail(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, key(tea.KeyCtrlT))
	m, _ = update(t, m, listMsg{Students: []model.Student{
		{"_id": "a", "fullName": "Ann", "password": "hunter2"},
	}})

	m, _ = update(t, m, key(tea.KeyEnter))
	require.NotNil(t, m.State().Selected)
	view := m.View()
	assert.Contains(t, view, "Student Details")
	assert.Contains(t, view, dashboard.PasswordMask)
	assert.NotContains(t, view, "hunter2")

	m, _ = update(t, m, key(tea.KeyEsc))
	assert.Nil(t, m.State().Selected)
}

func TestModel_TypingUpdatesPendingRecord(t *testing.T) {
	m := newTestModel(nil)

	m, _ = update(t, m, runes("Ann"))

	assert.Equal(t, "Ann", m.State().Form.Payload()["fullName"])
}

func TestModel_CheckboxToggling(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, key(tea.KeyTab))

	m, _ = update(t, m, key(tea.KeySpace))
	m, _ = update(t, m, key(tea.KeyRight))
	m, _ = update(t, m, key(tea.KeySpace))
	m, _ = update(t, m, key(tea.KeyLeft))
	m, _ = update(t, m, key(tea.KeySpace))

	assert.Equal(t, []string{"CSS"}, m.State().Form.Payload()["skills"])
}

func TestModel_SubmitBlockedShowsErrors(t *testing.T) {
	r := &fakeRegistrar{}
	m := newTestModel(r)

	m, cmd := update(t, m, key(tea.KeyCtrlS))

	assert.Nil(t, cmd)
	assert.Len(t, m.State().Errors, 2)
	assert.Contains(t, m.View(), "Please fill out this field.")
	assert.Nil(t, r.payload)
}

func TestModel_SubmitShowsAcknowledgement(t *testing.T) {
	r := &fakeRegistrar{ack: client.Ack{Message: "Student registered successfully!"}}
	m := newTestModel(r)
	m, _ = update(t, m, runes("Ann"))
	m, _ = update(t, m, key(tea.KeyTab))
	m, _ = update(t, m, key(tea.KeyTab))
	m, _ = update(t, m, key(tea.KeyRight))

	m, cmd := update(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, map[string]interface{}{
		"fullName":   "Ann",
		"course":     "B.Sc",
		"internalId": "student-123",
	}, r.payload)
	assert.Contains(t, m.View(), "Student registered successfully!")

	m, _ = update(t, m, key(tea.KeyEnter))
	assert.Empty(t, m.State().Notice)
}

func TestModel_SubmitNetworkFailureUsesSameAlert(t *testing.T) {
	r := &fakeRegistrar{err: errors.New("connection refused")}
	m := newTestModel(r)
	m, _ = update(t, m, runes("Ann"))
	m, _ = update(t, m, key(tea.KeyTab))
	m, _ = update(t, m, key(tea.KeyTab))
	m, _ = update(t, m, key(tea.KeySpace))

	m, cmd := update(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Contains(t, m.View(), "Registration failed: connection refused")
}

// Package state holds all client-side portal state and the single function that changes it.
package state

import (
	"fmt"

	"studentportal/portal/client"
	"studentportal/portal/form"
	"studentportal/portal/model"
)

// State is everything the form and dashboard show. Values are replaced, never mutated in place.
type State struct {
	Form   form.Pending
	Errors []form.FieldError

	Students []model.Student
	Loading  bool
	// Selected is the record open in the detail view, nil when none is.
	Selected model.Student

	// Notice is a message the user must dismiss.
	Notice string
}

// New returns the state of a freshly opened portal.
func New(fields []form.Field) State {
	return State{
		Form:     form.NewPending(fields),
		Students: []model.Student{},
		Loading:  true,
	}
}

// Action is an event the reducer understands.
type Action interface {
	action()
}

type FieldChanged struct{ Edit form.Edit }

// EditRejected reports an edit the client could not turn into a value, such as an unreadable file.
type EditRejected struct{ Err error }

type SubmitRequested struct{}

type SubmitCompleted struct {
	Ack client.Ack
	Err error
}

type ListRefreshed struct{ Students []model.Student }

type ListFailed struct{ Err error }

// RecordSelected opens the record at Index of the current list.
type RecordSelected struct{ Index int }

type SelectionCleared struct{}

type NoticeDismissed struct{}

func (FieldChanged) action()     {}
func (EditRejected) action()     {}
func (SubmitRequested) action()  {}
func (SubmitCompleted) action()  {}
func (ListRefreshed) action()    {}
func (ListFailed) action()       {}
func (RecordSelected) action()   {}
func (SelectionCleared) action() {}
func (NoticeDismissed) action()  {}

// Effect is work the caller must perform after a transition.
type Effect interface {
	effect()
}

// Submit asks the caller to send Payload to the registration service and report back with
// SubmitCompleted.
type Submit struct{ Payload map[string]interface{} }

// LogError asks the caller to log a failure that is not shown to the user.
type LogError struct {
	Op  string
	Err error
}

func (Submit) effect()   {}
func (LogError) effect() {}

// Reduce applies a to s. The returned Effect is nil when there is nothing else to do.
func Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case FieldChanged:
		next, err := s.Form.Apply(a.Edit)
		if err != nil {
			s.Notice = err.Error()
			return s, nil
		}
		s.Form = next
		s.Errors = dropFieldError(s.Errors, a.Edit.Name)
		return s, nil

	case EditRejected:
		s.Notice = a.Err.Error()
		return s, nil

	case SubmitRequested:
		if errs := s.Form.Validate(); len(errs) > 0 {
			s.Errors = errs
			return s, nil
		}
		s.Errors = nil
		return s, Submit{Payload: s.Form.Payload()}

	case SubmitCompleted:
		switch {
		case a.Err != nil:
			s.Notice = fmt.Sprintf("Registration failed: %v", a.Err)
		default:
			s.Notice = a.Ack.Message
		}
		return s, nil

	case ListRefreshed:
		s.Loading = false
		s.Students = a.Students
		if s.Students == nil {
			s.Students = []model.Student{}
		}
		return s, nil

	case ListFailed:
		s.Loading = false
		return s, LogError{Op: "fetch students", Err: a.Err}

	case RecordSelected:
		if a.Index < 0 || a.Index >= len(s.Students) {
			return s, nil
		}
		s.Selected = s.Students[a.Index]
		return s, nil

	case SelectionCleared:
		s.Selected = nil
		return s, nil

	case NoticeDismissed:
		s.Notice = ""
		return s, nil
	}
	return s, nil
}

func dropFieldError(errs []form.FieldError, name string) []form.FieldError {
	if len(errs) == 0 {
		return errs
	}
	out := make([]form.FieldError, 0, len(errs))
	for _, e := range errs {
		if e.Field != name {
			out = append(out, e)
		}
	}
	return out
}

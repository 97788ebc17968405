package form

import (
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// FieldError is a client-side check that blocks submission. The service itself accepts anything.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

func (e FieldError) Error() string {
	return e.Label + ": " + e.Message
}

var weekPattern = regexp.MustCompile(`^\d{4}-W(0[1-9]|[1-4]\d|5[0-3])$`)

// Validate runs the same checks a browser applies before letting the form submit: required fields
// and the input type's format. Errors come back in display order.
func (p Pending) Validate() []FieldError {
	var errs []FieldError
	for _, f := range p.fields {
		if !f.Visible() {
			continue
		}
		v, ok := p.values[f.Name]
		if !ok || v.IsEmpty() {
			if f.Required() {
				errs = append(errs, FieldError{Field: f.Name, Label: f.Label, Message: missingMessage(f)})
			}
			continue
		}
		if f.Kind() != KindText {
			continue
		}
		if msg := checkFormat(f.Type, v.Text()); msg != "" {
			errs = append(errs, FieldError{Field: f.Name, Label: f.Label, Message: msg})
		}
	}
	return errs
}

func missingMessage(f Field) string {
	switch f.Type {
	case TypeRadio:
		return "Please select one of these options."
	case TypeSelect:
		return "Please select an item in the list."
	}
	return "Please fill out this field."
}

func checkFormat(t InputType, s string) string {
	switch t {
	case TypeEmail:
		if !govalidator.IsEmail(s) {
			return "Please enter an email address."
		}
	case TypeURL:
		if !govalidator.IsRequestURL(s) {
			return "Please enter a URL."
		}
	case TypeNumber:
		if !govalidator.IsFloat(s) {
			return "Please enter a number."
		}
	case TypeRange:
		if !govalidator.IsInt(s) || !govalidator.InRangeInt(s, 0, 100) {
			return "Value must be between 0 and 100."
		}
	case TypeColor:
		if !strings.HasPrefix(s, "#") || len(s) != 7 || !govalidator.IsHexcolor(s) {
			return "Please enter a color as #rrggbb."
		}
	case TypeDate:
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "Please enter a date as YYYY-MM-DD."
		}
	case TypeTime:
		if !parsesAs(s, "15:04", "15:04:05") {
			return "Please enter a time as HH:MM."
		}
	case TypeMonth:
		if _, err := time.Parse("2006-01", s); err != nil {
			return "Please enter a month as YYYY-MM."
		}
	case TypeWeek:
		if !weekPattern.MatchString(s) {
			return "Please enter a week as YYYY-Www."
		}
	}
	return ""
}

func parsesAs(s string, layouts ...string) bool {
	for _, l := range layouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}

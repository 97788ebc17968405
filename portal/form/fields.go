// Package form collects registration field edits into a pending record and turns it into the
// submitted payload.
package form

// InputType is the declared input control of a field.
type InputType string

const (
	TypeText     InputType = "text"
	TypeEmail    InputType = "email"
	TypePassword InputType = "password"
	TypeNumber   InputType = "number"
	TypeTel      InputType = "tel"
	TypeURL      InputType = "url"
	TypeDate     InputType = "date"
	TypeTime     InputType = "time"
	TypeMonth    InputType = "month"
	TypeWeek     InputType = "week"
	TypeRadio    InputType = "radio"
	TypeCheckbox InputType = "checkbox"
	TypeSelect   InputType = "select"
	TypeTextarea InputType = "textarea"
	TypeFile     InputType = "file"
	TypeRange    InputType = "range"
	TypeColor    InputType = "color"
	TypeHidden   InputType = "hidden"
)

// Kind decides how a field's edits are collected and serialized.
type Kind int

const (
	KindText Kind = iota
	KindMultiSelect
	KindFile
	KindHidden
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMultiSelect:
		return "multi-select"
	case KindFile:
		return "file"
	case KindHidden:
		return "hidden"
	}
	return "unknown"
}

// Field is one declared form control.
type Field struct {
	Name    string
	Label   string
	Type    InputType
	Options []string
	// Value is the fixed literal of a hidden field.
	Value string
}

func (f Field) Kind() Kind {
	switch f.Type {
	case TypeCheckbox:
		return KindMultiSelect
	case TypeFile:
		return KindFile
	case TypeHidden:
		return KindHidden
	}
	return KindText
}

// Required reports whether the field blocks submission while empty. Only visible single-value
// fields are required. Range and color controls always hold a value in a browser, so they never
// block; left untouched they are simply absent from the payload.
func (f Field) Required() bool {
	switch f.Type {
	case TypeRange, TypeColor:
		return false
	}
	return f.Kind() == KindText
}

// Visible reports whether the field is shown to the user.
func (f Field) Visible() bool {
	return f.Kind() != KindHidden
}

// HasOptions reports whether the field picks from a fixed option list.
func (f Field) HasOptions() bool {
	return len(f.Options) > 0
}

// RegistrationFields is the student registration form, in display order.
var RegistrationFields = []Field{
	{Name: "fullName", Label: "Full Name", Type: TypeText},
	{Name: "email", Label: "Email", Type: TypeEmail},
	{Name: "password", Label: "Password", Type: TypePassword},
	{Name: "age", Label: "Age", Type: TypeNumber},
	{Name: "phone", Label: "Phone Number", Type: TypeTel},
	{Name: "website", Label: "Personal Website", Type: TypeURL},
	{Name: "dob", Label: "Date of Birth", Type: TypeDate},
	{Name: "birthTime", Label: "Time of Birth", Type: TypeTime},
	{Name: "birthMonth", Label: "Birth Month", Type: TypeMonth},
	{Name: "birthWeek", Label: "Birth Week", Type: TypeWeek},
	{Name: "gender", Label: "Gender", Type: TypeRadio, Options: []string{"Male", "Female", "Other"}},
	{Name: "skills", Label: "Skills", Type: TypeCheckbox, Options: []string{"HTML", "CSS", "JavaScript", "React"}},
	{Name: "course", Label: "Course", Type: TypeSelect, Options: []string{"B.Tech", "B.Sc", "B.Com", "MBA"}},
	{Name: "address", Label: "Address", Type: TypeTextarea},
	{Name: "profilePic", Label: "Profile Picture", Type: TypeFile},
	{Name: "satisfaction", Label: "Satisfaction Level", Type: TypeRange},
	{Name: "favoriteColor", Label: "Favorite Color", Type: TypeColor},
	{Name: "internalId", Type: TypeHidden, Value: "student-123"},
}

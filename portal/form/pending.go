package form

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrReadOnlyField = errors.New("field is read-only")
	ErrInvalidOption = errors.New("not one of the field's options")
)

// Edit is one change to a field, as a form control reports it.
//
// Text fields use Value. Multi-select fields use Value as the option and Checked for its state.
// File fields use File; a nil File clears the selection.
type Edit struct {
	Name    string
	Value   string
	Checked bool
	File    *FileHandle
}

// Pending is the record being filled in. It is immutable: Apply returns a new Pending.
type Pending struct {
	fields []Field
	index  map[string]int
	values map[string]Value
}

// NewPending starts an empty record for fields. Hidden fields are set to their literal values.
func NewPending(fields []Field) Pending {
	p := Pending{
		fields: fields,
		index:  make(map[string]int, len(fields)),
		values: make(map[string]Value, len(fields)),
	}
	for i, f := range fields {
		p.index[f.Name] = i
		if f.Kind() == KindHidden {
			p.values[f.Name] = hiddenValue(f.Value)
		}
	}
	return p
}

// Fields returns the declarations in display order.
func (p Pending) Fields() []Field { return p.fields }

func (p Pending) Field(name string) (Field, bool) {
	i, ok := p.index[name]
	if !ok {
		return Field{}, false
	}
	return p.fields[i], true
}

// Value returns the collected value of name, if the field has been edited.
func (p Pending) Value(name string) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Checked reports whether option is currently selected in a multi-select field.
func (p Pending) Checked(name, option string) bool {
	v, ok := p.values[name]
	if !ok {
		return false
	}
	for _, it := range v.items {
		if it == option {
			return true
		}
	}
	return false
}

// Apply records one edit.
func (p Pending) Apply(e Edit) (Pending, error) {
	f, ok := p.Field(e.Name)
	if !ok {
		return p, fmt.Errorf("%s: %w", e.Name, ErrUnknownField)
	}

	var next Value
	switch f.Kind() {
	case KindHidden:
		return p, fmt.Errorf("%s: %w", e.Name, ErrReadOnlyField)

	case KindText:
		if f.HasOptions() && e.Value != "" && !hasOption(f, e.Value) {
			return p, fmt.Errorf("%s=%q: %w", e.Name, e.Value, ErrInvalidOption)
		}
		next = TextValue(e.Value)

	case KindMultiSelect:
		if !hasOption(f, e.Value) {
			return p, fmt.Errorf("%s=%q: %w", e.Name, e.Value, ErrInvalidOption)
		}
		cur, ok := p.values[e.Name]
		if !ok {
			cur = ItemsValue(nil)
		}
		if e.Checked {
			next = cur.with(e.Value)
		} else {
			next = cur.without(e.Value)
		}

	case KindFile:
		next = FileValue(e.File)
	}

	return p.with(e.Name, next), nil
}

func (p Pending) with(name string, v Value) Pending {
	values := make(map[string]Value, len(p.values)+1)
	for k, old := range p.values {
		values[k] = old
	}
	values[name] = v
	return Pending{fields: p.fields, index: p.index, values: values}
}

// Payload is the JSON object to submit: every edited field plus hidden fields. File fields carry
// only the file name and are left out when no file is selected.
func (p Pending) Payload() map[string]interface{} {
	out := make(map[string]interface{}, len(p.values))
	for _, f := range p.fields {
		v, ok := p.values[f.Name]
		if !ok {
			continue
		}
		s := v.serialize()
		if s == nil {
			continue
		}
		out[f.Name] = s
	}
	return out
}

func hasOption(f Field, option string) bool {
	for _, o := range f.Options {
		if o == option {
			return true
		}
	}
	return false
}

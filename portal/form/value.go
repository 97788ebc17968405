package form

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileHandle is a local file picked for a file field. Only Name ever leaves the client.
type FileHandle struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// OpenFile resolves path to a regular file.
func OpenFile(path string) (*FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return &FileHandle{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Value is the collected value of one field. Which accessor is meaningful depends on Kind.
type Value struct {
	kind  Kind
	text  string
	items []string
	file  *FileHandle
}

func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

func ItemsValue(items []string) Value {
	return Value{kind: KindMultiSelect, items: append([]string{}, items...)}
}

func FileValue(h *FileHandle) Value {
	return Value{kind: KindFile, file: h}
}

func hiddenValue(s string) Value {
	return Value{kind: KindHidden, text: s}
}

func (v Value) Kind() Kind { return v.kind }

// Text is the string of a text or hidden value.
func (v Value) Text() string { return v.text }

// Items returns a copy of a multi-select value's checked options, in check order.
func (v Value) Items() []string { return append([]string{}, v.items...) }

func (v Value) File() *FileHandle { return v.file }

// IsEmpty reports whether the value would fail a required check.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindMultiSelect:
		return len(v.items) == 0
	case KindFile:
		return v.file == nil
	}
	return v.text == ""
}

// serialize returns the JSON-ready form. Files reduce to their name.
func (v Value) serialize() interface{} {
	switch v.kind {
	case KindMultiSelect:
		return v.Items()
	case KindFile:
		if v.file == nil {
			return nil
		}
		return v.file.Name
	}
	return v.text
}

func (v Value) with(item string) Value {
	for _, it := range v.items {
		if it == item {
			return v
		}
	}
	out := ItemsValue(v.items)
	out.items = append(out.items, item)
	return out
}

func (v Value) without(item string) Value {
	out := Value{kind: KindMultiSelect, items: make([]string, 0, len(v.items))}
	for _, it := range v.items {
		if it != item {
			out.items = append(out.items, it)
		}
	}
	return out
}

package domain

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// Keys the store owns in the serialized record. Submitted values under these keys are replaced.
const (
	KeyID        = "_id"
	KeyCreatedAt = "createdAt"
	KeyUpdatedAt = "updatedAt"
)

// Document is the submitted registration body, kept exactly as received.
//
// The legacy student schema declared `name` and `year` while the form posts `fullName` and no
// `year`. Nothing here maps one onto the other: whatever keys arrive are the keys that are stored.
type Document map[string]interface{}

func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := sonic.Marshal(map[string]interface{}(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Document) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Document{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported document column type %T", src)
	}

	m := map[string]interface{}{}
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	*d = m
	return nil
}

// Text returns the value under key when it is a string.
func (d Document) Text(key string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}

// Registration is one stored student registration. FullName, Email and Course are copied out of
// the document for indexing only; the document stays the source of truth.
type Registration struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	FullName  string    `gorm:"type:varchar(255)"`
	Email     string    `gorm:"type:varchar(255);index"`
	Course    string    `gorm:"type:varchar(100);index"`
	Document  Document  `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// NewRegistration prepares a record for insert. The ID is assigned by the repository.
func NewRegistration(doc Document) *Registration {
	if doc == nil {
		doc = Document{}
	}
	clean := make(Document, len(doc))
	for k, v := range doc {
		switch k {
		case KeyID, KeyCreatedAt, KeyUpdatedAt:
			continue
		}
		clean[k] = v
	}
	return &Registration{
		FullName: clean.Text("fullName"),
		Email:    clean.Text("email"),
		Course:   clean.Text("course"),
		Document: clean,
	}
}

// Flatten returns the record as a single object: every submitted key plus _id, createdAt, updatedAt.
func (r Registration) Flatten() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Document)+3)
	for k, v := range r.Document {
		out[k] = v
	}
	out[KeyID] = r.ID
	out[KeyCreatedAt] = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	out[KeyUpdatedAt] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return out
}

func (r Registration) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(r.Flatten())
}

func (r *Registration) UnmarshalJSON(data []byte) error {
	m := map[string]interface{}{}
	if err := sonic.Unmarshal(data, &m); err != nil {
		return err
	}

	id, _ := m[KeyID].(string)
	created, err := parseStamp(m[KeyCreatedAt])
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	updated, err := parseStamp(m[KeyUpdatedAt])
	if err != nil {
		return fmt.Errorf("updatedAt: %w", err)
	}

	rec := NewRegistration(m)
	rec.ID = id
	rec.CreatedAt = created
	rec.UpdatedAt = updated
	*r = *rec
	return nil
}

func parseStamp(v interface{}) (time.Time, error) {
	s, _ := v.(string)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

type RegistrationRepo interface {
	Create(ctx context.Context, reg *Registration) error
	GetAll(ctx context.Context) ([]Registration, error)
}

type RegistrationUseCase interface {
	Register(ctx context.Context, doc Document) (*Registration, error)
	GetAllRegistrations(ctx context.Context) ([]Registration, error)
}

// RegistrationCache holds the full list between writes. Every Invalidate advances the cache
// generation; SetAll stores a list only while the generation still equals the one read before the
// list was queried, so a fill racing a write is dropped.
type RegistrationCache interface {
	GetAll(ctx context.Context) ([]Registration, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetAll(ctx context.Context, gen int64, regs []Registration) error
	Invalidate(ctx context.Context) error
}

// RegistrationEvents announces new registrations to other systems.
type RegistrationEvents interface {
	Registered(ctx context.Context, reg *Registration) error
}

// RegistrationEvent is the published summary of a new registration. It never carries the password.
type RegistrationEvent struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Course    string    `json:"course"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewRegistrationEvent(reg *Registration) RegistrationEvent {
	return RegistrationEvent{
		ID:        reg.ID,
		FullName:  reg.FullName,
		Email:     reg.Email,
		Course:    reg.Course,
		CreatedAt: reg.CreatedAt,
	}
}

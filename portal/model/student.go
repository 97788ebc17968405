// Package model holds the client-side view of a stored registration.
package model

// Student is one record as returned by the registration service: the submitted keys plus
// _id, createdAt and updatedAt. Values keep their decoded JSON types.
type Student map[string]interface{}

// ID returns the store-assigned identifier.
func (s Student) ID() string {
	id, _ := s["_id"].(string)
	return id
}

// Get returns the raw value for key; nil when absent.
func (s Student) Get(key string) interface{} {
	if s == nil {
		return nil
	}
	return s[key]
}

// Has reports whether key is present with a non-nil value.
func (s Student) Has(key string) bool {
	v, ok := s[key]
	return ok && v != nil
}

package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state patch field: absent, explicit null, or a value.
// Patch structs use it so an update only touches the columns the client sent.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that explicitly clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked when the key is present in the payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON writes null for absent or cleared fields.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsSet reports whether the key was present in the payload.
func (o Optional[T]) IsSet() bool {
	return o.Set
}

// Ptr returns nil for a cleared or absent field, otherwise a pointer to the value.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// Or returns the value when present, otherwise def.
func (o Optional[T]) Or(def T) T {
	if !o.Valid {
		return def
	}
	return o.Value
}

type presence interface {
	IsSet() bool
}

type namedField struct {
	name  string
	field presence
}

func presentFields(fields ...namedField) []string {
	var names []string
	for _, f := range fields {
		if f.field.IsSet() {
			names = append(names, f.name)
		}
	}
	return names
}

// ClientStamps carries client-side creation timestamps. They are honoured on
// create only; updates are always stamped by the server.
type ClientStamps struct {
	CreatedAt Optional[string] `json:"createdAt"`
	UpdatedAt Optional[string] `json:"updatedAt"`
}

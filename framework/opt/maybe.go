// Package opt provides an optional value type, used for nullable wire properties and for model
// state that may be empty.
package opt

import (
	"encoding/json"
	"fmt"
)

// Maybe is either a value of type V or nothing.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe that has a defined value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns a Maybe with no value.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// FromPtr returns Some(*ptr), or None if ptr is nil.
func FromPtr[V any](ptr *V) Maybe[V] {
	if ptr == nil {
		return None[V]()
	}
	return Some(*ptr)
}

// IsDefined returns true if the Maybe has a value.
func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the value, or the zero value of V if there is none.
func (m Maybe[V]) Value() V { return m.value }

// AsPtr returns a pointer to a copy of the value, or nil.
func (m Maybe[V]) AsPtr() *V {
	if !m.defined {
		return nil
	}
	v := m.value
	return &v
}

// OrElse returns the value, or valueIfUndefined if there is none.
func (m Maybe[V]) OrElse(valueIfUndefined V) V {
	if m.defined {
		return m.value
	}
	return valueIfUndefined
}

// String returns "[none]" or the value's own string representation.
func (m Maybe[V]) String() string {
	if !m.defined {
		return "[none]"
	}
	if s, ok := interface{}(m.value).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", m.value)
}

// MarshalJSON writes the value's usual JSON representation, or null.
func (m Maybe[V]) MarshalJSON() ([]byte, error) {
	if !m.defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON sets the Maybe to None for a JSON null, or to Some of the parsed value.
func (m *Maybe[V]) UnmarshalJSON(data []byte) error {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe == nil {
		*m = None[V]()
		return nil
	}
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*m = Some(value)
	return nil
}

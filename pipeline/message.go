package pipeline

import (
	"encoding/json"
	"fmt"
)

// Message is what travels through the shared buffer: either a data item or
// the end-of-stream marker. The marker is a distinct variant, so no data
// value can be mistaken for it.
type Message[T any] struct {
	value T
	end   bool
}

// Item wraps a data value.
func Item[T any](v T) Message[T] {
	return Message[T]{value: v}
}

// EndOfStream returns the marker telling one consumer to stop.
func EndOfStream[T any]() Message[T] {
	return Message[T]{end: true}
}

// IsEnd reports whether m is the end-of-stream marker.
func (m Message[T]) IsEnd() bool { return m.end }

// Value returns the wrapped item, or the zero value for the marker.
func (m Message[T]) Value() T { return m.value }

func (m Message[T]) String() string {
	if m.end {
		return "<end-of-stream>"
	}
	return fmt.Sprintf("%v", m.value)
}

// MarshalJSON renders data items as their value and the marker as a tagged
// object, so structured logs stay readable.
func (m Message[T]) MarshalJSON() ([]byte, error) {
	if m.end {
		return []byte(`{"end_of_stream":true}`), nil
	}
	return json.Marshal(m.value)
}

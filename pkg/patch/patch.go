// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

/*
Package patch provides a generic field wrapper for partial-update payloads.

JSON partial updates need three states per field — absent, null, and a value —
but a plain pointer collapses the first two. [Field] keeps them apart: Set is
false only when the key was missing from the payload, so "clear this field"
(explicit null) and "leave unchanged" (absent) stay distinguishable.
*/
package patch

import (
	"bytes"
	"encoding/json"
)

// Field wraps a value with a presence flag for use in patch requests.
//
// The zero Field means "not supplied". After unmarshalling, Set is true for
// every key present in the payload, including keys set to JSON null (which
// leave Value at its zero value).
type Field[T any] struct {
	// Set reports whether the field appeared in the payload at all.
	Set bool
	// Value is the decoded value, or the zero value when the payload held null.
	Value T
}

var jsonNull = []byte("null")

// UnmarshalJSON implements [json.Unmarshaler]. It is only invoked for keys
// present in the payload, which is what makes the presence flag reliable.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// Of returns a Field carrying the given value with the presence flag raised.
func Of[T any](value T) Field[T] {
	return Field[T]{Set: true, Value: value}
}

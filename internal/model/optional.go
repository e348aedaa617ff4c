package model

import (
	"bytes"
	"encoding/json"
)

// Optional wraps a JSON field whose absence is significant. UnmarshalJSON
// only runs when the key is present in the document, so Set distinguishes
// "omitted" from "explicitly null": a null leaves Value nil with Set true.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some builds a present Optional carrying the given value
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null builds a present Optional carrying an explicit null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Package optional provides a tri-state value used by sparse update patches.
//
// A plain pointer cannot distinguish "the caller never sent this field" from
// "the caller sent null/zero to clear it". Optional tracks key presence
// explicitly so a PATCH can apply an explicit false or empty string while
// leaving untouched fields alone.
package optional

import "github.com/edukit/campus/pkg/utils/json"

// Optional holds a value that may be absent.
// The zero Optional is absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Of returns a present Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Set stores v and marks the Optional present.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.present = true
}

// Clear resets the Optional to absent.
func (o *Optional[T]) Clear() {
	var zero T
	o.value = zero
	o.present = false
}

// Present reports whether a value was supplied.
func (o Optional[T]) Present() bool {
	return o.present
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// MustGet returns the value and panics when absent.
func (o Optional[T]) MustGet() T {
	if !o.present {
		panic("optional: value is absent")
	}
	return o.value
}

// OrElse returns the value when present, def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// UnmarshalJSON marks the Optional present. It is only invoked when the key
// exists in the payload, which is exactly the presence signal we need.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value = v
	o.present = true
	return nil
}

// MarshalJSON serializes the held value; absent values serialize as null.
// Sparse patches should consult Present and omit the key entirely instead.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

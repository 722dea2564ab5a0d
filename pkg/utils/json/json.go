// Package json is a thin facade over sonic so the serialization engine is
// swappable in one place.
package json

import "github.com/bytedance/sonic"

// Marshal serializes v to JSON.
func Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// Unmarshal parses JSON data into v.
func Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

// MarshalString serializes v to a JSON string.
func MarshalString(v any) (string, error) {
	return sonic.MarshalString(v)
}

// UnmarshalString parses a JSON string into v.
func UnmarshalString(data string, v any) error {
	return sonic.UnmarshalString(data, v)
}

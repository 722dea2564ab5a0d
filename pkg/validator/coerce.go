package validator

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// timeLayouts are the accepted wire formats for timestamp fields, tried in
// order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CoerceBool converts a raw wire value into a strict boolean. The tolerant
// set is fixed: native bools, the strings "0"/"1"/"true"/"false" and the
// numbers 0/1. Anything else is an error.
func CoerceBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch val {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
	case float64: // JSON numbers decode as float64
		if val == 0 {
			return false, nil
		}
		if val == 1 {
			return true, nil
		}
	case int:
		if val == 0 {
			return false, nil
		}
		if val == 1 {
			return true, nil
		}
	}
	return false, fmt.Errorf("value %v is not a boolean", v)
}

// CoerceInt converts a raw wire value into an int.
func CoerceInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int(val), nil
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", val)
		}
		return n, nil
	}
	return 0, fmt.Errorf("value %v is not an integer", v)
}

// CoerceString returns the value as a string when it is one.
func CoerceString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// CoerceStrings converts a raw array value into []string.
func CoerceStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// CoerceIDs converts a raw array value into a []uint identifier set.
func CoerceIDs(v any) ([]uint, bool) {
	switch val := v.(type) {
	case []uint:
		return val, true
	case []any:
		out := make([]uint, 0, len(val))
		for _, item := range val {
			n, err := CoerceInt(item)
			if err != nil || n < 0 {
				return nil, false
			}
			out = append(out, uint(n))
		}
		return out, true
	}
	return nil, false
}

// ParseTime parses a raw wire value into a time.Time using the accepted
// layouts.
func ParseTime(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("value %v is not a timestamp", v)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("value %q is not a valid timestamp", s)
}

// StringOr extracts a string field from the payload, substituting def when
// the key is absent.
func StringOr(payload map[string]any, key, def string) string {
	v, ok := payload[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// BoolOr extracts a boolean field from the payload, substituting def when
// the key is absent. The value must already have passed the Bool rule.
func BoolOr(payload map[string]any, key string, def bool) bool {
	v, ok := payload[key]
	if !ok {
		return def
	}
	b, err := CoerceBool(v)
	if err != nil {
		return def
	}
	return b
}

// IntOr extracts an integer field from the payload, substituting def when
// the key is absent.
func IntOr(payload map[string]any, key string, def int) int {
	v, ok := payload[key]
	if !ok {
		return def
	}
	n, err := CoerceInt(v)
	if err != nil {
		return def
	}
	return n
}

// NullableString normalizes an optional string field: absent or empty string
// becomes nil.
func NullableString(payload map[string]any, key string) *string {
	v, ok := payload[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// TimeOr extracts a timestamp field from the payload, returning nil when the
// key is absent or empty.
func TimeOr(payload map[string]any, key string) *time.Time {
	v, ok := payload[key]
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil
	}
	t, err := ParseTime(v)
	if err != nil {
		return nil
	}
	return &t
}

package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    bool
		wantErr bool
	}{
		{"native true", true, true, false},
		{"native false", false, false, false},
		{"string one", "1", true, false},
		{"string zero", "0", false, false},
		{"string true", "true", true, false},
		{"string false", "false", false, false},
		{"json number one", float64(1), true, false},
		{"json number zero", float64(0), false, false},
		{"int one", 1, true, false},
		{"int zero", 0, false, false},
		{"string yes rejected", "yes", false, true},
		{"string empty rejected", "", false, true},
		{"number two rejected", float64(2), false, true},
		{"nil rejected", nil, false, true},
		{"array rejected", []any{true}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceBool(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int
		wantErr bool
	}{
		{"native int", 42, 42, false},
		{"json number", float64(7), 7, false},
		{"numeric string", "15", 15, false},
		{"negative string", "-3", -3, false},
		{"fractional rejected", float64(1.5), 0, true},
		{"alpha string rejected", "abc", 0, true},
		{"nil rejected", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceInt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceStrings(t *testing.T) {
	got, ok := CoerceStrings([]any{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	got, ok = CoerceStrings([]string{"x"})
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, got)

	_, ok = CoerceStrings([]any{"a", 1})
	assert.False(t, ok)

	_, ok = CoerceStrings("not an array")
	assert.False(t, ok)
}

func TestCoerceIDs(t *testing.T) {
	got, ok := CoerceIDs([]any{float64(1), float64(2)})
	require.True(t, ok)
	assert.Equal(t, []uint{1, 2}, got)

	_, ok = CoerceIDs([]any{float64(-1)})
	assert.False(t, ok)

	_, ok = CoerceIDs([]any{"nope"})
	assert.False(t, ok)
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2026-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("2026-03-01 10:00:00")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	got, err = ParseTime("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())

	_, err = ParseTime("03/01/2026")
	assert.Error(t, err)

	_, err = ParseTime(12345)
	assert.Error(t, err)
}

func TestPayloadDefaults(t *testing.T) {
	payload := map[string]any{
		"title":     "Hello",
		"published": "0",
		"sort":      float64(3),
		"excerpt":   "",
	}

	assert.Equal(t, "Hello", StringOr(payload, "title", "x"))
	assert.Equal(t, "fallback", StringOr(payload, "missing", "fallback"))

	assert.False(t, BoolOr(payload, "published", true))
	assert.True(t, BoolOr(payload, "missing", true))

	assert.Equal(t, 3, IntOr(payload, "sort", 0))
	assert.Equal(t, 9, IntOr(payload, "missing", 9))

	assert.Nil(t, NullableString(payload, "excerpt"))
	assert.Nil(t, NullableString(payload, "missing"))
	if got := NullableString(payload, "title"); assert.NotNil(t, got) {
		assert.Equal(t, "Hello", *got)
	}
}

func TestTimeOr(t *testing.T) {
	payload := map[string]any{
		"published_at": "2026-03-01T10:00:00Z",
		"expires_at":   "",
	}

	got := TimeOr(payload, "published_at")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())

	assert.Nil(t, TimeOr(payload, "expires_at"))
	assert.Nil(t, TimeOr(payload, "missing"))
}

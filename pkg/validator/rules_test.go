package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetCollectsAllViolations(t *testing.T) {
	rs := NewRuleSet().
		Field("title", Required(), MaxLen(5)).
		Field("status", Required(), OneOf("draft", "published")).
		Field("capacity", IntBetween(1, 100))

	verrs := rs.Apply(map[string]any{
		"title":    "way too long for the cap",
		"status":   "archived",
		"capacity": float64(500),
	})
	require.NotNil(t, verrs)

	byField := verrs.ByField()
	assert.Len(t, byField["title"], 1)
	assert.Len(t, byField["status"], 1)
	assert.Len(t, byField["capacity"], 1)
}

func TestRuleSetFieldFailsMultipleRules(t *testing.T) {
	rs := NewRuleSet().
		Field("slug", Required(), MinLen(3), Slug())

	verrs := rs.Apply(map[string]any{"slug": "A!"})
	require.NotNil(t, verrs)
	// Both the length and the format rule must report; no short circuit.
	assert.Len(t, verrs.ByField()["slug"], 2)
}

func TestRuleSetCleanPayloadReturnsNil(t *testing.T) {
	rs := NewRuleSet().
		Field("title", Required(), MaxLen(50)).
		Field("status", OneOf("draft", "published"))

	assert.Nil(t, rs.Apply(map[string]any{
		"title":  "Open day",
		"status": "draft",
	}))
}

func TestRequiredDistinguishesAbsentNullEmpty(t *testing.T) {
	rs := NewRuleSet().Field("name", Required())

	for _, payload := range []map[string]any{
		{},
		{"name": nil},
		{"name": ""},
	} {
		verrs := rs.Apply(payload)
		require.NotNil(t, verrs)
		assert.Contains(t, verrs.ByField()["name"][0], "required")
	}

	assert.Nil(t, rs.Apply(map[string]any{"name": "ok"}))
}

func TestOptionalRulesSkipBlankValues(t *testing.T) {
	rs := NewRuleSet().
		Field("image", URL()).
		Field("email", Email()).
		Field("date", DateTime())

	// Absent, null and empty all pass format-only rules.
	assert.Nil(t, rs.Apply(map[string]any{}))
	assert.Nil(t, rs.Apply(map[string]any{"image": nil, "email": "", "date": nil}))

	verrs := rs.Apply(map[string]any{
		"image": "not a url",
		"email": "not-an-email",
		"date":  "yesterday",
	})
	require.NotNil(t, verrs)
	assert.Equal(t, 3, verrs.Count())
}

func TestOneOfRejectsSuppliedBlank(t *testing.T) {
	rs := NewRuleSet().
		Field("status", OneOf("draft", "published"))

	// Absent is fine; the field defaults elsewhere.
	assert.Nil(t, rs.Apply(map[string]any{}))
	assert.Nil(t, rs.ApplyPresent(map[string]any{}))

	// A supplied empty string or null is not part of the vocabulary and
	// must not reach storage through a patch.
	for _, payload := range []map[string]any{
		{"status": ""},
		{"status": nil},
		{"status": 7},
	} {
		verrs := rs.ApplyPresent(payload)
		require.NotNil(t, verrs)
		assert.Contains(t, verrs.ByField()["status"][0], "invalid")

		verrs = rs.Apply(payload)
		require.NotNil(t, verrs)
		assert.Contains(t, verrs.ByField()["status"][0], "invalid")
	}
}

func TestApplyPresentSkipsAbsentFields(t *testing.T) {
	rs := NewRuleSet().
		Field("title", Required(), MaxLen(50)).
		Field("status", Required(), OneOf("draft", "published"))

	// Patch payloads omit untouched fields; Required must not fire on them.
	assert.Nil(t, rs.ApplyPresent(map[string]any{"status": "published"}))

	verrs := rs.ApplyPresent(map[string]any{"title": ""})
	require.NotNil(t, verrs)
	byField := verrs.ByField()
	assert.Len(t, byField["title"], 1)
	assert.NotContains(t, byField, "status")
}

func TestAfterReportsOnLaterField(t *testing.T) {
	rs := NewRuleSet().
		Field("published_at", DateTime()).
		Field("expires_at", DateTime(), After("published_at"))

	verrs := rs.Apply(map[string]any{
		"published_at": "2026-03-02T00:00:00Z",
		"expires_at":   "2026-03-01T00:00:00Z",
	})
	require.NotNil(t, verrs)
	byField := verrs.ByField()
	assert.NotContains(t, byField, "published_at")
	assert.Contains(t, byField["expires_at"][0], "after")
}

func TestAfterEqualTimestampsFail(t *testing.T) {
	rs := NewRuleSet().Field("expires_at", After("published_at"))

	verrs := rs.Apply(map[string]any{
		"published_at": "2026-03-01T00:00:00Z",
		"expires_at":   "2026-03-01T00:00:00Z",
	})
	assert.NotNil(t, verrs)
}

func TestAfterQuietWhenCounterpartMissing(t *testing.T) {
	rs := NewRuleSet().Field("expires_at", After("published_at"))

	assert.Nil(t, rs.Apply(map[string]any{"expires_at": "2026-03-01T00:00:00Z"}))
	assert.Nil(t, rs.Apply(map[string]any{
		"published_at": "",
		"expires_at":   "2026-03-01T00:00:00Z",
	}))
}

func TestUnique(t *testing.T) {
	seen := map[string]bool{"science-fair": true}
	rs := NewRuleSet().Field("slug", Unique(func(s string) (bool, error) {
		return seen[s], nil
	}))

	verrs := rs.Apply(map[string]any{"slug": "science-fair"})
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.ByField()["slug"][0], "already been taken")

	assert.Nil(t, rs.Apply(map[string]any{"slug": "open-day"}))
}

func TestUniqueLookupError(t *testing.T) {
	rs := NewRuleSet().Field("slug", Unique(func(string) (bool, error) {
		return false, errors.New("connection refused")
	}))

	verrs := rs.Apply(map[string]any{"slug": "open-day"})
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.ByField()["slug"][0], "could not be verified")
}

func TestEachIndexesViolations(t *testing.T) {
	rs := NewRuleSet().Field("images", Each(Required(), URL()))

	verrs := rs.Apply(map[string]any{
		"images": []any{
			"https://example.com/a.jpg",
			"not a url",
			"https://example.com/c.jpg",
			"also bad",
		},
	})
	require.NotNil(t, verrs)

	byField := verrs.ByField()
	assert.NotContains(t, byField, "images")
	assert.NotContains(t, byField, "images.0")
	assert.Len(t, byField["images.1"], 1)
	assert.Len(t, byField["images.3"], 1)
}

func TestEachRejectsNonArray(t *testing.T) {
	rs := NewRuleSet().Field("images", Each(URL()))

	verrs := rs.Apply(map[string]any{"images": "just-one.jpg"})
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.ByField()["images"][0], "array")
}

func TestBoolRule(t *testing.T) {
	rs := NewRuleSet().Field("published", Bool())

	assert.Nil(t, rs.Apply(map[string]any{"published": "1"}))
	assert.Nil(t, rs.Apply(map[string]any{"published": false}))
	assert.Nil(t, rs.Apply(map[string]any{}))
	assert.NotNil(t, rs.Apply(map[string]any{"published": "maybe"}))
}

func TestFieldMergesRepeatedRegistrations(t *testing.T) {
	rs := NewRuleSet().
		Field("title", Required()).
		Field("title", MaxLen(3))

	verrs := rs.Apply(map[string]any{"title": "too long"})
	require.NotNil(t, verrs)
	assert.Len(t, verrs.ByField()["title"], 1)
}

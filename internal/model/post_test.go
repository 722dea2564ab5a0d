package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostCreateDefaults(t *testing.T) {
	c := NewPostCreate(map[string]any{
		"title": "Open day",
		"slug":  "open-day",
		"body":  "Doors open at nine.",
	})

	assert.Equal(t, PostStatusDraft, c.Status)
	assert.Equal(t, PostTypeNews, c.ContentType)
	assert.False(t, c.Featured)
	assert.False(t, c.Pinned)
	assert.NotNil(t, c.CategoryIDs)
	assert.Empty(t, c.CategoryIDs)
	assert.Nil(t, c.Excerpt)
	assert.Nil(t, c.Image)
	assert.Nil(t, c.PublishedAt)
}

func TestNewPostCreateSuppliedValues(t *testing.T) {
	c := NewPostCreate(map[string]any{
		"title":        "Sports week",
		"slug":         "sports-week",
		"body":         "Full schedule inside.",
		"excerpt":      "Schedule",
		"status":       PostStatusPublished,
		"content_type": PostTypeEvent,
		"featured":     "1",
		"pinned":       true,
		"categories":   []any{float64(2), float64(5)},
		"published_at": "2026-03-01T10:00:00Z",
	})

	assert.Equal(t, PostStatusPublished, c.Status)
	assert.Equal(t, PostTypeEvent, c.ContentType)
	assert.True(t, c.Featured)
	assert.True(t, c.Pinned)
	assert.Equal(t, []uint{2, 5}, c.CategoryIDs)
	require.NotNil(t, c.Excerpt)
	assert.Equal(t, "Schedule", *c.Excerpt)
	require.NotNil(t, c.PublishedAt)
	assert.Equal(t, 2026, c.PublishedAt.Year())
}

func TestNewPostCreateEmptyStringBecomesNull(t *testing.T) {
	c := NewPostCreate(map[string]any{
		"title":   "Open day",
		"slug":    "open-day",
		"body":    "x",
		"excerpt": "",
		"image":   "",
	})

	assert.Nil(t, c.Excerpt)
	assert.Nil(t, c.Image)
}

func TestNewPostPatchAbsentKeysStayAbsent(t *testing.T) {
	p := NewPostPatch(map[string]any{"title": "Renamed"})

	assert.True(t, p.Title.Present())
	assert.False(t, p.Slug.Present())
	assert.False(t, p.Featured.Present())
	assert.False(t, p.CategoryIDs.Present())

	changes := p.Changes()
	assert.Equal(t, map[string]any{"title": "Renamed"}, changes)
}

func TestNewPostPatchExplicitFalseSurvives(t *testing.T) {
	p := NewPostPatch(map[string]any{"featured": false, "pinned": "0"})

	require.True(t, p.Featured.Present())
	assert.False(t, p.Featured.MustGet())
	require.True(t, p.Pinned.Present())
	assert.False(t, p.Pinned.MustGet())

	changes := p.Changes()
	assert.Contains(t, changes, "featured")
	assert.Equal(t, false, changes["featured"])
	assert.Contains(t, changes, "pinned")
	assert.Equal(t, false, changes["pinned"])
	assert.NotContains(t, changes, "title")
}

func TestNewPostPatchExplicitEmptyClears(t *testing.T) {
	p := NewPostPatch(map[string]any{"excerpt": "", "image": nil})

	require.True(t, p.Excerpt.Present())
	assert.Nil(t, p.Excerpt.MustGet())
	require.True(t, p.Image.Present())
	assert.Nil(t, p.Image.MustGet())

	changes := p.Changes()
	assert.Contains(t, changes, "excerpt")
	assert.Nil(t, changes["excerpt"])
	assert.Contains(t, changes, "image")
	assert.Nil(t, changes["image"])
}

func TestNewPostPatchEmptyCategoriesMeansClear(t *testing.T) {
	p := NewPostPatch(map[string]any{"categories": []any{}})

	ids, ok := p.CategoryIDs.Get()
	require.True(t, ok)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
	// Associations are not column updates.
	assert.NotContains(t, p.Changes(), "categories")
}

func TestFacilityCreateDefaults(t *testing.T) {
	c := NewFacilityCreate(map[string]any{
		"name": "Library",
		"slug": "library",
	})

	assert.Equal(t, 1, c.Capacity)
	assert.True(t, c.Active)
}

func TestAnnouncementPatchTimestamps(t *testing.T) {
	p := NewAnnouncementPatch(map[string]any{
		"published_at": "2026-03-01T10:00:00Z",
		"expires_at":   "",
	})

	pub, ok := p.PublishedAt.Get()
	require.True(t, ok)
	require.NotNil(t, pub)

	// Explicit empty clears the expiry.
	exp, ok := p.ExpiresAt.Get()
	require.True(t, ok)
	assert.Nil(t, exp)

	changes := p.Changes()
	assert.Contains(t, changes, "published_at")
	assert.Contains(t, changes, "expires_at")
	assert.Nil(t, changes["expires_at"])
	assert.NotContains(t, changes, "title")
}

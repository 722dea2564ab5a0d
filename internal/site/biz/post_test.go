package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/model"
	apperrors "github.com/edukit/campus/pkg/errors"
)

func TestPostCreateAppliesDefaults(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewPostService(factory)
	ctx := context.Background()

	post, verrs, err := svc.Create(ctx, map[string]any{
		"title": "Sports Day",
		"slug":  "sports-day",
		"body":  "See you on the field.",
	})
	require.NoError(t, err)
	require.Nil(t, verrs)

	assert.Equal(t, model.PostStatusDraft, post.Status)
	assert.Equal(t, model.PostTypeNews, post.ContentType)
	assert.False(t, post.Featured)
	assert.False(t, post.Pinned)
	assert.Nil(t, post.Excerpt)
	assert.Nil(t, post.PublishedAt)
	assert.Empty(t, post.Categories)
}

func TestPostCreateCollectsAllViolations(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewPostService(factory)

	_, verrs, err := svc.Create(context.Background(), map[string]any{
		"slug":   "Bad Slug!",
		"status": "nonsense",
	})
	require.NoError(t, err)
	require.NotNil(t, verrs)

	byField := verrs.ByField()
	assert.Contains(t, byField, "title")
	assert.Contains(t, byField, "slug")
	assert.Contains(t, byField, "body")
	assert.Contains(t, byField, "status")
}

func TestPostUpdateIgnoresAbsentFields(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewPostService(factory)
	ctx := context.Background()

	post, _, err := svc.Create(ctx, map[string]any{
		"title":    "Original",
		"slug":     "original",
		"body":     "Body text.",
		"featured": true,
	})
	require.NoError(t, err)

	updated, verrs, err := svc.Update(ctx, post.ID, map[string]any{
		"title": "Renamed",
	})
	require.NoError(t, err)
	require.Nil(t, verrs)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original", updated.Slug)
	assert.True(t, updated.Featured)
}

func TestPostUpdateExplicitFalseSticks(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewPostService(factory)
	ctx := context.Background()

	post, _, err := svc.Create(ctx, map[string]any{
		"title":    "Flagged",
		"slug":     "flagged",
		"body":     "Body.",
		"featured": true,
		"pinned":   true,
	})
	require.NoError(t, err)

	updated, verrs, err := svc.Update(ctx, post.ID, map[string]any{
		"featured": false,
	})
	require.NoError(t, err)
	require.Nil(t, verrs)

	assert.False(t, updated.Featured)
	assert.True(t, updated.Pinned)
}

func TestPostUpdateRejectsBlankEnumValues(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewPostService(factory)
	ctx := context.Background()

	post, _, err := svc.Create(ctx, map[string]any{
		"title": "Enumed", "slug": "enumed", "body": "Body.",
	})
	require.NoError(t, err)
	require.Equal(t, model.PostStatusDraft, post.Status)

	for _, payload := range []map[string]any{
		{"status": ""},
		{"status": nil},
		{"content_type": ""},
	} {
		_, verrs, err := svc.Update(ctx, post.ID, payload)
		require.NoError(t, err)
		require.NotNil(t, verrs, "payload %v must not validate", payload)
	}

	// The stored vocabulary values survive the rejected patches.
	unchanged, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDraft, unchanged.Status)
	assert.Equal(t, model.PostTypeNews, unchanged.ContentType)
}

func TestPostSlugUniquenessExcludesSelf(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewPostService(factory)
	ctx := context.Background()

	first, _, err := svc.Create(ctx, map[string]any{
		"title": "First", "slug": "shared", "body": "One.",
	})
	require.NoError(t, err)

	// A second record cannot claim the slug.
	_, verrs, err := svc.Create(ctx, map[string]any{
		"title": "Second", "slug": "shared", "body": "Two.",
	})
	require.NoError(t, err)
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.ByField(), "slug")

	// The owner can resubmit its own slug unchanged.
	updated, verrs, err := svc.Update(ctx, first.ID, map[string]any{
		"slug": "shared", "title": "Still First",
	})
	require.NoError(t, err)
	require.Nil(t, verrs)
	assert.Equal(t, "shared", updated.Slug)
}

func TestPostUpdateReplacesCategories(t *testing.T) {
	factory := newTestFactory(t)
	cats := NewCategoryService(factory)
	svc := NewPostService(factory)
	ctx := context.Background()

	news, _, err := cats.Create(ctx, map[string]any{"name": "News", "slug": "news"})
	require.NoError(t, err)
	sport, _, err := cats.Create(ctx, map[string]any{"name": "Sport", "slug": "sport"})
	require.NoError(t, err)

	post, _, err := svc.Create(ctx, map[string]any{
		"title": "Tagged", "slug": "tagged", "body": "Body.",
		"categories": []any{float64(news.ID)},
	})
	require.NoError(t, err)
	require.Len(t, post.Categories, 1)

	updated, verrs, err := svc.Update(ctx, post.ID, map[string]any{
		"categories": []any{float64(sport.ID)},
	})
	require.NoError(t, err)
	require.Nil(t, verrs)
	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "sport", updated.Categories[0].Slug)

	cleared, verrs, err := svc.Update(ctx, post.ID, map[string]any{
		"categories": []any{},
	})
	require.NoError(t, err)
	require.Nil(t, verrs)
	assert.Empty(t, cleared.Categories)
}

func TestPostGetMissing(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewPostService(factory)

	_, err := svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = svc.Update(context.Background(), 9999, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAnnouncementOrderingRule(t *testing.T) {
	factory := newTestFactory(t)
	svc := NewAnnouncementService(factory)
	ctx := context.Background()

	_, verrs, err := svc.Create(ctx, map[string]any{
		"title":        "Open House",
		"body":         "Doors at nine.",
		"published_at": "2026-05-01 09:00:00",
		"expires_at":   "2026-04-01 09:00:00",
	})
	require.NoError(t, err)
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.ByField(), "expires_at")

	ann, verrs, err := svc.Create(ctx, map[string]any{
		"title":        "Open House",
		"body":         "Doors at nine.",
		"published_at": "2026-05-01 09:00:00",
		"expires_at":   "2026-06-01 09:00:00",
	})
	require.NoError(t, err)
	require.Nil(t, verrs)

	// A partial update still sees the stored counterpart timestamp.
	_, verrs, err = svc.Update(ctx, ann.ID, map[string]any{
		"expires_at": "2026-04-01 09:00:00",
	})
	require.NoError(t, err)
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.ByField(), "expires_at")
}

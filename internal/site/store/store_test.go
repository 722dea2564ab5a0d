package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/pkg/component/sqlite"
	sqliteopts "github.com/edukit/campus/pkg/options/sqlite"
)

func newTestFactory(t *testing.T) Factory {
	t.Helper()

	opts := sqliteopts.NewOptions()
	opts.Path = ":memory:"
	client, err := sqlite.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	factory := NewFactory(client.DB())
	require.NoError(t, factory.AutoMigrate())
	return factory
}

func TestPostCreateWithCategories(t *testing.T) {
	factory := newTestFactory(t)
	ctx := context.Background()

	cats := factory.Categories()
	news := &model.Category{Name: "News", Slug: "news"}
	events := &model.Category{Name: "Events", Slug: "events"}
	require.NoError(t, cats.Create(ctx, news))
	require.NoError(t, cats.Create(ctx, events))

	post := &model.Post{
		Title:       "Open day",
		Slug:        "open-day",
		Body:        "Doors open at nine.",
		Status:      model.PostStatusDraft,
		ContentType: model.PostTypeNews,
	}
	require.NoError(t, factory.Posts().Create(ctx, post, []uint{news.ID, events.ID}))

	got, err := factory.Posts().GetBySlug(ctx, "open-day")
	require.NoError(t, err)
	assert.Len(t, got.Categories, 2)
}

func TestPostSparseUpdate(t *testing.T) {
	factory := newTestFactory(t)
	ctx := context.Background()

	excerpt := "short"
	post := &model.Post{
		Title:       "Open day",
		Slug:        "open-day",
		Excerpt:     &excerpt,
		Body:        "x",
		Status:      model.PostStatusPublished,
		ContentType: model.PostTypeNews,
		Featured:    true,
	}
	require.NoError(t, factory.Posts().Create(ctx, post, nil))

	// Clearing one field and flipping a flag leaves everything else alone.
	err := factory.Posts().Update(ctx, post.ID, map[string]any{
		"excerpt":  nil,
		"featured": false,
	})
	require.NoError(t, err)

	got, err := factory.Posts().Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Excerpt)
	assert.False(t, got.Featured)
	assert.Equal(t, "Open day", got.Title)
	assert.Equal(t, model.PostStatusPublished, got.Status)
}

func TestPostReplaceCategories(t *testing.T) {
	factory := newTestFactory(t)
	ctx := context.Background()

	news := &model.Category{Name: "News", Slug: "news"}
	sports := &model.Category{Name: "Sports", Slug: "sports"}
	require.NoError(t, factory.Categories().Create(ctx, news))
	require.NoError(t, factory.Categories().Create(ctx, sports))

	post := &model.Post{Title: "T", Slug: "t", Body: "b", Status: "draft", ContentType: "news"}
	require.NoError(t, factory.Posts().Create(ctx, post, []uint{news.ID}))

	require.NoError(t, factory.Posts().ReplaceCategories(ctx, post.ID, []uint{sports.ID}))
	got, err := factory.Posts().Get(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "sports", got.Categories[0].Slug)

	// Empty set clears all assignments.
	require.NoError(t, factory.Posts().ReplaceCategories(ctx, post.ID, nil))
	got, err = factory.Posts().Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
}

func TestSlugTakenExcludesOwnRecord(t *testing.T) {
	factory := newTestFactory(t)
	ctx := context.Background()

	first := &model.Post{Title: "A", Slug: "science-fair", Body: "x", Status: "draft", ContentType: "news"}
	second := &model.Post{Title: "B", Slug: "open-day", Body: "x", Status: "draft", ContentType: "news"}
	require.NoError(t, factory.Posts().Create(ctx, first, nil))
	require.NoError(t, factory.Posts().Create(ctx, second, nil))

	// Another record owns the slug.
	taken, err := factory.Posts().SlugTaken(ctx, "science-fair", second.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	// A record keeping its own slug does not collide with itself.
	taken, err = factory.Posts().SlugTaken(ctx, "science-fair", first.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	// Create path checks against everything.
	taken, err = factory.Posts().SlugTaken(ctx, "science-fair", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = factory.Posts().SlugTaken(ctx, "brand-new", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestPostListFilters(t *testing.T) {
	factory := newTestFactory(t)
	ctx := context.Background()

	for _, p := range []*model.Post{
		{Title: "A", Slug: "a", Body: "x", Status: "published", ContentType: "news"},
		{Title: "B", Slug: "b", Body: "x", Status: "draft", ContentType: "news"},
		{Title: "C", Slug: "c", Body: "x", Status: "published", ContentType: "event"},
	} {
		require.NoError(t, factory.Posts().Create(ctx, p, nil))
	}

	count, items, err := factory.Posts().List(ctx, ListPostOptions{Limit: 10, Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, items, 2)

	count, _, err = factory.Posts().List(ctx, ListPostOptions{Limit: 10, Status: "published", ContentType: "event"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestActivityRequirementsRoundTrip(t *testing.T) {
	factory := newTestFactory(t)
	ctx := context.Background()

	activity := &model.Activity{
		Name:         "Chess club",
		Slug:         "chess-club",
		Category:     model.ActivityCategoryAcademic,
		Requirements: []string{"own chess set", "weekly attendance"},
	}
	require.NoError(t, factory.Activities().Create(ctx, activity))

	got, err := factory.Activities().GetBySlug(ctx, "chess-club")
	require.NoError(t, err)
	assert.Equal(t, []string{"own chess set", "weekly attendance"}, got.Requirements)
}

func TestUserStore(t *testing.T) {
	factory := newTestFactory(t)
	ctx := context.Background()

	user := &model.User{Username: "head", Password: "hash", Role: model.RoleAdmin, Status: model.UserStatusEnabled}
	require.NoError(t, factory.Users().Create(ctx, user))

	got, err := factory.Users().Get(ctx, "head")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.Enabled())

	_, err = factory.Users().Get(ctx, "nobody")
	assert.Error(t, err)
}

package biz

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/site/store"
	apperrors "github.com/edukit/campus/pkg/errors"
	"github.com/edukit/campus/pkg/validator"
)

// PostService handles post business logic: validation, parameter-object
// construction and persistence orchestration.
type PostService struct {
	store store.Factory
}

// NewPostService creates a new PostService.
func NewPostService(store store.Factory) *PostService {
	return &PostService{store: store}
}

// postRules declares the per-field rules. The slug uniqueness check excludes
// excludeID so an update does not collide with the record's own slug.
func (s *PostService) postRules(ctx context.Context, excludeID uint) *validator.RuleSet {
	return validator.NewRuleSet().
		Field("title", validator.Required(), validator.MaxLen(255)).
		Field("slug",
			validator.Required(),
			validator.MaxLen(255),
			validator.Slug(),
			validator.Unique(func(slug string) (bool, error) {
				return s.store.Posts().SlugTaken(ctx, slug, excludeID)
			}),
		).
		Field("body", validator.Required()).
		Field("excerpt", validator.MaxLen(500)).
		Field("image", validator.URL()).
		Field("status", validator.OneOf(model.PostStatuses...)).
		Field("content_type", validator.OneOf(model.PostTypes...)).
		Field("featured", validator.Bool()).
		Field("pinned", validator.Bool()).
		Field("categories", validator.Array(), validator.Each(validator.Integer())).
		Field("published_at", validator.DateTime())
}

// Create validates the payload, builds the create parameters with defaults
// and persists the post.
func (s *PostService) Create(ctx context.Context, payload map[string]any) (*model.Post, *validator.ValidationErrors, error) {
	if verrs := s.postRules(ctx, 0).Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	params := model.NewPostCreate(payload)
	post := params.Model()
	if err := s.store.Posts().Create(ctx, post, params.CategoryIDs); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}

	created, err := s.store.Posts().Get(ctx, post.ID)
	if err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return created, nil, nil
}

// Update validates only the supplied fields, builds a sparse patch and
// merges it into the stored post.
func (s *PostService) Update(ctx context.Context, id uint, payload map[string]any) (*model.Post, *validator.ValidationErrors, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, err
	}

	if verrs := s.postRules(ctx, id).ApplyPresent(payload); verrs != nil {
		return nil, verrs, nil
	}

	patch := model.NewPostPatch(payload)
	if err := s.store.Posts().Update(ctx, id, patch.Changes()); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	if ids, ok := patch.CategoryIDs.Get(); ok {
		if err := s.store.Posts().ReplaceCategories(ctx, id, ids); err != nil {
			return nil, nil, apperrors.ErrDatabase.WithCause(err)
		}
	}

	updated, err := s.store.Posts().Get(ctx, id)
	if err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return updated, nil, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Posts().Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a post by id.
func (s *PostService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.store.Posts().Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return post, nil
}

// GetBySlug retrieves a post by slug, for the public site.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.store.Posts().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return post, nil
}

// List lists posts with filters.
func (s *PostService) List(ctx context.Context, opts store.ListPostOptions) (*model.PostList, error) {
	count, items, err := s.store.Posts().List(ctx, opts)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.PostList{TotalCount: count, Items: items}, nil
}

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

// GalleryService handles gallery business logic.
type GalleryService struct {
	store store.Factory
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(store store.Factory) *GalleryService {
	return &GalleryService{store: store}
}

func (s *GalleryService) galleryRules(ctx context.Context, excludeID uint) *validator.RuleSet {
	return validator.NewRuleSet().
		Field("title", validator.Required(), validator.MaxLen(255)).
		Field("slug",
			validator.Required(),
			validator.MaxLen(255),
			validator.Slug(),
			validator.Unique(func(slug string) (bool, error) {
				return s.store.Galleries().SlugTaken(ctx, slug, excludeID)
			}),
		).
		Field("description", validator.MaxLen(5000)).
		Field("images", validator.Array(), validator.Each(validator.Required(), validator.URL())).
		Field("event_date", validator.DateTime())
}

// Create validates the payload and persists the gallery.
func (s *GalleryService) Create(ctx context.Context, payload map[string]any) (*model.Gallery, *validator.ValidationErrors, error) {
	if verrs := s.galleryRules(ctx, 0).Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	gallery := model.NewGalleryCreate(payload).Model()
	if err := s.store.Galleries().Create(ctx, gallery); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return gallery, nil, nil
}

// Update validates the supplied fields and merges the sparse patch.
func (s *GalleryService) Update(ctx context.Context, id uint, payload map[string]any) (*model.Gallery, *validator.ValidationErrors, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, err
	}

	if verrs := s.galleryRules(ctx, id).ApplyPresent(payload); verrs != nil {
		return nil, verrs, nil
	}

	patch := model.NewGalleryPatch(payload)
	if err := s.store.Galleries().Update(ctx, id, patch.Changes()); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// Delete removes a gallery.
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Galleries().Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a gallery by id.
func (s *GalleryService) Get(ctx context.Context, id uint) (*model.Gallery, error) {
	gallery, err := s.store.Galleries().Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return gallery, nil
}

// GetBySlug retrieves a gallery by slug, for the public site.
func (s *GalleryService) GetBySlug(ctx context.Context, slug string) (*model.Gallery, error) {
	gallery, err := s.store.Galleries().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return gallery, nil
}

// List lists galleries with pagination.
func (s *GalleryService) List(ctx context.Context, offset, limit int) (*model.GalleryList, error) {
	count, items, err := s.store.Galleries().List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.GalleryList{TotalCount: count, Items: items}, nil
}

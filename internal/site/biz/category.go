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

// CategoryService handles category business logic.
type CategoryService struct {
	store store.Factory
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store store.Factory) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) categoryRules(ctx context.Context, excludeID uint) *validator.RuleSet {
	return validator.NewRuleSet().
		Field("name", validator.Required(), validator.MaxLen(128)).
		Field("slug",
			validator.Required(),
			validator.MaxLen(128),
			validator.Slug(),
			validator.Unique(func(slug string) (bool, error) {
				return s.store.Categories().SlugTaken(ctx, slug, excludeID)
			}),
		)
}

// Create validates the payload and persists the category.
func (s *CategoryService) Create(ctx context.Context, payload map[string]any) (*model.Category, *validator.ValidationErrors, error) {
	if verrs := s.categoryRules(ctx, 0).Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	category := &model.Category{
		Name: validator.StringOr(payload, "name", ""),
		Slug: validator.StringOr(payload, "slug", ""),
	}
	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return category, nil, nil
}

// Update validates the supplied fields and applies them.
func (s *CategoryService) Update(ctx context.Context, id uint, payload map[string]any) (*model.Category, *validator.ValidationErrors, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, err
	}

	if verrs := s.categoryRules(ctx, id).ApplyPresent(payload); verrs != nil {
		return nil, verrs, nil
	}

	changes := make(map[string]any)
	if _, ok := payload["name"]; ok {
		changes["name"] = validator.StringOr(payload, "name", "")
	}
	if _, ok := payload["slug"]; ok {
		changes["slug"] = validator.StringOr(payload, "slug", "")
	}
	if err := s.store.Categories().Update(ctx, id, changes); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Categories().Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a category by id.
func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.store.Categories().Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return category, nil
}

// List lists categories with pagination.
func (s *CategoryService) List(ctx context.Context, offset, limit int) (*model.CategoryList, error) {
	count, items, err := s.store.Categories().List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.CategoryList{TotalCount: count, Items: items}, nil
}

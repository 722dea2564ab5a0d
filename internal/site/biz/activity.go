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

// ActivityService handles extracurricular activity business logic.
type ActivityService struct {
	store store.Factory
}

// NewActivityService creates a new ActivityService.
func NewActivityService(store store.Factory) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) activityRules(ctx context.Context, excludeID uint) *validator.RuleSet {
	return validator.NewRuleSet().
		Field("name", validator.Required(), validator.MaxLen(255)).
		Field("slug",
			validator.Required(),
			validator.MaxLen(255),
			validator.Slug(),
			validator.Unique(func(slug string) (bool, error) {
				return s.store.Activities().SlugTaken(ctx, slug, excludeID)
			}),
		).
		Field("description", validator.MaxLen(5000)).
		Field("category", validator.Required(), validator.OneOf(model.ActivityCategories...)).
		// Each requirement line is checked on its own; violations come
		// back per index.
		Field("requirements", validator.Array(), validator.Each(validator.Required(), validator.MaxLen(255))).
		Field("active", validator.Bool())
}

// Create validates the payload and persists the activity.
func (s *ActivityService) Create(ctx context.Context, payload map[string]any) (*model.Activity, *validator.ValidationErrors, error) {
	if verrs := s.activityRules(ctx, 0).Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	activity := model.NewActivityCreate(payload).Model()
	if err := s.store.Activities().Create(ctx, activity); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return activity, nil, nil
}

// Update validates the supplied fields and merges the sparse patch.
func (s *ActivityService) Update(ctx context.Context, id uint, payload map[string]any) (*model.Activity, *validator.ValidationErrors, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, err
	}

	if verrs := s.activityRules(ctx, id).ApplyPresent(payload); verrs != nil {
		return nil, verrs, nil
	}

	patch := model.NewActivityPatch(payload)
	if err := s.store.Activities().Update(ctx, id, patch.Changes()); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Activities().Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves an activity by id.
func (s *ActivityService) Get(ctx context.Context, id uint) (*model.Activity, error) {
	activity, err := s.store.Activities().Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return activity, nil
}

// GetBySlug retrieves an activity by slug, for the public site.
func (s *ActivityService) GetBySlug(ctx context.Context, slug string) (*model.Activity, error) {
	activity, err := s.store.Activities().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return activity, nil
}

// List lists activities with pagination.
func (s *ActivityService) List(ctx context.Context, offset, limit int) (*model.ActivityList, error) {
	count, items, err := s.store.Activities().List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.ActivityList{TotalCount: count, Items: items}, nil
}

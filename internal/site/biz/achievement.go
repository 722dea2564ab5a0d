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

// AchievementService handles achievement business logic.
type AchievementService struct {
	store store.Factory
}

// NewAchievementService creates a new AchievementService.
func NewAchievementService(store store.Factory) *AchievementService {
	return &AchievementService{store: store}
}

func achievementRules() *validator.RuleSet {
	return validator.NewRuleSet().
		Field("title", validator.Required(), validator.MaxLen(255)).
		Field("description", validator.MaxLen(5000)).
		Field("recipient", validator.MaxLen(255)).
		Field("level", validator.OneOf(model.AchievementLevels...)).
		Field("awarded_at", validator.DateTime()).
		Field("featured", validator.Bool())
}

// Create validates the payload and persists the achievement.
func (s *AchievementService) Create(ctx context.Context, payload map[string]any) (*model.Achievement, *validator.ValidationErrors, error) {
	if verrs := achievementRules().Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	achievement := model.NewAchievementCreate(payload).Model()
	if err := s.store.Achievements().Create(ctx, achievement); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return achievement, nil, nil
}

// Update validates the supplied fields and merges the sparse patch.
func (s *AchievementService) Update(ctx context.Context, id uint, payload map[string]any) (*model.Achievement, *validator.ValidationErrors, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, err
	}

	if verrs := achievementRules().ApplyPresent(payload); verrs != nil {
		return nil, verrs, nil
	}

	patch := model.NewAchievementPatch(payload)
	if err := s.store.Achievements().Update(ctx, id, patch.Changes()); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// Delete removes an achievement.
func (s *AchievementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Achievements().Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves an achievement by id.
func (s *AchievementService) Get(ctx context.Context, id uint) (*model.Achievement, error) {
	achievement, err := s.store.Achievements().Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return achievement, nil
}

// List lists achievements with pagination.
func (s *AchievementService) List(ctx context.Context, offset, limit int) (*model.AchievementList, error) {
	count, items, err := s.store.Achievements().List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.AchievementList{TotalCount: count, Items: items}, nil
}

package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

type achievements struct {
	db *gorm.DB
}

func newAchievements(db *gorm.DB) *achievements {
	return &achievements{db}
}

// Create creates an achievement.
func (a *achievements) Create(ctx context.Context, achievement *model.Achievement) error {
	return a.db.WithContext(ctx).Create(achievement).Error
}

// Update applies a sparse column update to an achievement.
func (a *achievements) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Model(&model.Achievement{}).Where("id = ?", id).Updates(changes).Error
}

// Delete soft-deletes an achievement by id.
func (a *achievements) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&model.Achievement{}, id).Error
}

// Get retrieves an achievement by id.
func (a *achievements) Get(ctx context.Context, id uint) (*model.Achievement, error) {
	var achievement model.Achievement
	if err := a.db.WithContext(ctx).First(&achievement, id).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

// List lists achievements with pagination, most recent award first.
func (a *achievements) List(ctx context.Context, offset, limit int) (int64, []*model.Achievement, error) {
	var count int64
	var items []*model.Achievement

	if err := a.db.WithContext(ctx).Model(&model.Achievement{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	err := a.db.WithContext(ctx).Offset(offset).Limit(limit).
		Order("awarded_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

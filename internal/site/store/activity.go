package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

type activities struct {
	db *gorm.DB
}

func newActivities(db *gorm.DB) *activities {
	return &activities{db}
}

// Create creates an activity.
func (a *activities) Create(ctx context.Context, activity *model.Activity) error {
	return a.db.WithContext(ctx).Create(activity).Error
}

// Update applies a sparse column update to an activity.
func (a *activities) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Model(&model.Activity{}).Where("id = ?", id).Updates(changes).Error
}

// Delete soft-deletes an activity by id.
func (a *activities) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&model.Activity{}, id).Error
}

// Get retrieves an activity by id.
func (a *activities) Get(ctx context.Context, id uint) (*model.Activity, error) {
	var activity model.Activity
	if err := a.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetBySlug retrieves an activity by slug.
func (a *activities) GetBySlug(ctx context.Context, slug string) (*model.Activity, error) {
	var activity model.Activity
	if err := a.db.WithContext(ctx).Where("slug = ?", slug).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// List lists activities with pagination.
func (a *activities) List(ctx context.Context, offset, limit int) (int64, []*model.Activity, error) {
	var count int64
	var items []*model.Activity

	if err := a.db.WithContext(ctx).Model(&model.Activity{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if err := a.db.WithContext(ctx).Offset(offset).Limit(limit).Order("name").Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// SlugTaken reports whether another activity already uses the slug.
func (a *activities) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return slugTaken(ctx, a.db, &model.Activity{}, slug, excludeID)
}

package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

type facilities struct {
	db *gorm.DB
}

func newFacilities(db *gorm.DB) *facilities {
	return &facilities{db}
}

// Create creates a facility.
func (f *facilities) Create(ctx context.Context, facility *model.Facility) error {
	return f.db.WithContext(ctx).Create(facility).Error
}

// Update applies a sparse column update to a facility.
func (f *facilities) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).Model(&model.Facility{}).Where("id = ?", id).Updates(changes).Error
}

// Delete soft-deletes a facility by id.
func (f *facilities) Delete(ctx context.Context, id uint) error {
	return f.db.WithContext(ctx).Delete(&model.Facility{}, id).Error
}

// Get retrieves a facility by id.
func (f *facilities) Get(ctx context.Context, id uint) (*model.Facility, error) {
	var facility model.Facility
	if err := f.db.WithContext(ctx).First(&facility, id).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

// GetBySlug retrieves a facility by slug.
func (f *facilities) GetBySlug(ctx context.Context, slug string) (*model.Facility, error) {
	var facility model.Facility
	if err := f.db.WithContext(ctx).Where("slug = ?", slug).First(&facility).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

// List lists facilities with pagination.
func (f *facilities) List(ctx context.Context, offset, limit int) (int64, []*model.Facility, error) {
	var count int64
	var items []*model.Facility

	if err := f.db.WithContext(ctx).Model(&model.Facility{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if err := f.db.WithContext(ctx).Offset(offset).Limit(limit).Order("name").Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// SlugTaken reports whether another facility already uses the slug.
func (f *facilities) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return slugTaken(ctx, f.db, &model.Facility{}, slug, excludeID)
}

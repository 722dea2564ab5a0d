package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

type announcements struct {
	db *gorm.DB
}

func newAnnouncements(db *gorm.DB) *announcements {
	return &announcements{db}
}

// Create creates an announcement.
func (a *announcements) Create(ctx context.Context, announcement *model.Announcement) error {
	return a.db.WithContext(ctx).Create(announcement).Error
}

// Update applies a sparse column update to an announcement.
func (a *announcements) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Model(&model.Announcement{}).Where("id = ?", id).Updates(changes).Error
}

// Delete soft-deletes an announcement by id.
func (a *announcements) Delete(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&model.Announcement{}, id).Error
}

// Get retrieves an announcement by id.
func (a *announcements) Get(ctx context.Context, id uint) (*model.Announcement, error) {
	var announcement model.Announcement
	if err := a.db.WithContext(ctx).First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// List lists announcements with pagination.
func (a *announcements) List(ctx context.Context, offset, limit int) (int64, []*model.Announcement, error) {
	var count int64
	var items []*model.Announcement

	if err := a.db.WithContext(ctx).Model(&model.Announcement{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	err := a.db.WithContext(ctx).Offset(offset).Limit(limit).
		Order("pinned DESC, published_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// ListCurrent lists announcements that are published and not yet expired,
// for the public site.
func (a *announcements) ListCurrent(ctx context.Context) ([]*model.Announcement, error) {
	now := time.Now()
	var items []*model.Announcement
	err := a.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at <= ?", now).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("pinned DESC, published_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

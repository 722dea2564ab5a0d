package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

type galleries struct {
	db *gorm.DB
}

func newGalleries(db *gorm.DB) *galleries {
	return &galleries{db}
}

// Create creates a gallery.
func (g *galleries) Create(ctx context.Context, gallery *model.Gallery) error {
	return g.db.WithContext(ctx).Create(gallery).Error
}

// Update applies a sparse column update to a gallery.
func (g *galleries) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Model(&model.Gallery{}).Where("id = ?", id).Updates(changes).Error
}

// Delete soft-deletes a gallery by id.
func (g *galleries) Delete(ctx context.Context, id uint) error {
	return g.db.WithContext(ctx).Delete(&model.Gallery{}, id).Error
}

// Get retrieves a gallery by id.
func (g *galleries) Get(ctx context.Context, id uint) (*model.Gallery, error) {
	var gallery model.Gallery
	if err := g.db.WithContext(ctx).First(&gallery, id).Error; err != nil {
		return nil, err
	}
	return &gallery, nil
}

// GetBySlug retrieves a gallery by slug.
func (g *galleries) GetBySlug(ctx context.Context, slug string) (*model.Gallery, error) {
	var gallery model.Gallery
	if err := g.db.WithContext(ctx).Where("slug = ?", slug).First(&gallery).Error; err != nil {
		return nil, err
	}
	return &gallery, nil
}

// List lists galleries with pagination, newest event first.
func (g *galleries) List(ctx context.Context, offset, limit int) (int64, []*model.Gallery, error) {
	var count int64
	var items []*model.Gallery

	if err := g.db.WithContext(ctx).Model(&model.Gallery{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	err := g.db.WithContext(ctx).Offset(offset).Limit(limit).
		Order("event_date DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// SlugTaken reports whether another gallery already uses the slug.
func (g *galleries) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return slugTaken(ctx, g.db, &model.Gallery{}, slug, excludeID)
}

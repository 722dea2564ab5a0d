package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

type categories struct {
	db *gorm.DB
}

func newCategories(db *gorm.DB) *categories {
	return &categories{db}
}

// Create creates a new category.
func (c *categories) Create(ctx context.Context, category *model.Category) error {
	return c.db.WithContext(ctx).Create(category).Error
}

// Update applies a sparse column update to a category.
func (c *categories) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(changes).Error
}

// Delete soft-deletes a category by id.
func (c *categories) Delete(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

// Get retrieves a category by id.
func (c *categories) Get(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := c.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category by slug.
func (c *categories) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := c.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByIDs retrieves the categories with the given ids.
func (c *categories) GetByIDs(ctx context.Context, ids []uint) ([]*model.Category, error) {
	if len(ids) == 0 {
		return []*model.Category{}, nil
	}
	var items []*model.Category
	if err := c.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// List lists categories with pagination.
func (c *categories) List(ctx context.Context, offset, limit int) (int64, []*model.Category, error) {
	var count int64
	var items []*model.Category

	if err := c.db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if err := c.db.WithContext(ctx).Offset(offset).Limit(limit).Order("name").Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// SlugTaken reports whether another category already uses the slug. The
// excluded id lets an update keep its own current slug.
func (c *categories) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return slugTaken(ctx, c.db, &model.Category{}, slug, excludeID)
}

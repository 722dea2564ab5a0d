package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

type posts struct {
	db *gorm.DB
}

func newPosts(db *gorm.DB) *posts {
	return &posts{db}
}

// Create creates a post and assigns its categories in one transaction.
func (p *posts) Create(ctx context.Context, post *model.Post, categoryIDs []uint) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		var cats []*model.Category
		if err := tx.Where("id IN ?", categoryIDs).Find(&cats).Error; err != nil {
			return err
		}
		return tx.Model(post).Association("Categories").Replace(cats)
	})
}

// Update applies a sparse column update to a post.
func (p *posts) Update(ctx context.Context, id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(changes).Error
}

// ReplaceCategories replaces a post's category assignments wholesale.
func (p *posts) ReplaceCategories(ctx context.Context, id uint, categoryIDs []uint) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &model.Post{ID: id}
		var cats []*model.Category
		if len(categoryIDs) > 0 {
			if err := tx.Where("id IN ?", categoryIDs).Find(&cats).Error; err != nil {
				return err
			}
		}
		return tx.Model(post).Association("Categories").Replace(cats)
	})
}

// Delete soft-deletes a post by id.
func (p *posts) Delete(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

// Get retrieves a post with its categories by id.
func (p *posts) Get(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := p.db.WithContext(ctx).Preload("Categories").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post with its categories by slug.
func (p *posts) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	if err := p.db.WithContext(ctx).Preload("Categories").Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List lists posts with optional status, type and category filters. Pinned
// posts sort first.
func (p *posts) List(ctx context.Context, opts ListPostOptions) (int64, []*model.Post, error) {
	q := p.db.WithContext(ctx).Model(&model.Post{})
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.ContentType != "" {
		q = q.Where("content_type = ?", opts.ContentType)
	}
	if opts.CategoryID != 0 {
		q = q.Joins("JOIN post_categories pc ON pc.post_id = posts.id").
			Where("pc.category_id = ?", opts.CategoryID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, nil, err
	}

	var items []*model.Post
	err := q.Preload("Categories").
		Offset(opts.Offset).Limit(opts.Limit).
		Order("pinned DESC, published_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return 0, nil, err
	}
	return count, items, nil
}

// SlugTaken reports whether another post already uses the slug.
func (p *posts) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return slugTaken(ctx, p.db, &model.Post{}, slug, excludeID)
}

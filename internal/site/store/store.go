// Package store defines the persistence interfaces for the site backend
// and their GORM implementations.
package store

import (
	"context"

	"github.com/edukit/campus/internal/model"
)

// Factory creates the per-resource stores over one shared connection.
type Factory interface {
	Users() UserStore
	Categories() CategoryStore
	Posts() PostStore
	Announcements() AnnouncementStore
	Facilities() FacilityStore
	Activities() ActivityStore
	Galleries() GalleryStore
	Achievements() AchievementStore
	AutoMigrate() error
	Close() error
}

// UserStore defines the user storage interface.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.User, error)
}

// CategoryStore defines the category storage interface.
type CategoryStore interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*model.Category, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.Category, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// PostStore defines the post storage interface. Category assignments ride
// along on create and are replaced wholesale on update.
type PostStore interface {
	Create(ctx context.Context, post *model.Post, categoryIDs []uint) error
	Update(ctx context.Context, id uint, changes map[string]any) error
	ReplaceCategories(ctx context.Context, id uint, categoryIDs []uint) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	List(ctx context.Context, opts ListPostOptions) (int64, []*model.Post, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// ListPostOptions filters post listings.
type ListPostOptions struct {
	Offset      int
	Limit       int
	Status      string
	ContentType string
	CategoryID  uint
}

// AnnouncementStore defines the announcement storage interface.
type AnnouncementStore interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Announcement, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.Announcement, error)
	ListCurrent(ctx context.Context) ([]*model.Announcement, error)
}

// FacilityStore defines the facility storage interface.
type FacilityStore interface {
	Create(ctx context.Context, facility *model.Facility) error
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Facility, error)
	GetBySlug(ctx context.Context, slug string) (*model.Facility, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.Facility, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// ActivityStore defines the extracurricular activity storage interface.
type ActivityStore interface {
	Create(ctx context.Context, activity *model.Activity) error
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Activity, error)
	GetBySlug(ctx context.Context, slug string) (*model.Activity, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.Activity, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// GalleryStore defines the gallery storage interface.
type GalleryStore interface {
	Create(ctx context.Context, gallery *model.Gallery) error
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Gallery, error)
	GetBySlug(ctx context.Context, slug string) (*model.Gallery, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.Gallery, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// AchievementStore defines the achievement storage interface.
type AchievementStore interface {
	Create(ctx context.Context, achievement *model.Achievement) error
	Update(ctx context.Context, id uint, changes map[string]any) error
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Achievement, error)
	List(ctx context.Context, offset, limit int) (int64, []*model.Achievement, error)
}

package store

import (
	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
)

// datastore implements the Factory interface over a GORM connection.
type datastore struct {
	db *gorm.DB
}

// NewFactory creates a store factory over the given database connection.
// The caller owns the connection; Close here is a no-op.
func NewFactory(db *gorm.DB) Factory {
	return &datastore{db: db}
}

// Users returns the user store.
func (ds *datastore) Users() UserStore {
	return newUsers(ds.db)
}

// Categories returns the category store.
func (ds *datastore) Categories() CategoryStore {
	return newCategories(ds.db)
}

// Posts returns the post store.
func (ds *datastore) Posts() PostStore {
	return newPosts(ds.db)
}

// Announcements returns the announcement store.
func (ds *datastore) Announcements() AnnouncementStore {
	return newAnnouncements(ds.db)
}

// Facilities returns the facility store.
func (ds *datastore) Facilities() FacilityStore {
	return newFacilities(ds.db)
}

// Activities returns the activity store.
func (ds *datastore) Activities() ActivityStore {
	return newActivities(ds.db)
}

// Galleries returns the gallery store.
func (ds *datastore) Galleries() GalleryStore {
	return newGalleries(ds.db)
}

// Achievements returns the achievement store.
func (ds *datastore) Achievements() AchievementStore {
	return newAchievements(ds.db)
}

// AutoMigrate migrates the database schema.
func (ds *datastore) AutoMigrate() error {
	return ds.db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.Announcement{},
		&model.Facility{},
		&model.Activity{},
		&model.Gallery{},
		&model.Achievement{},
	)
}

// Close closes the factory. The connection is owned by its component.
func (ds *datastore) Close() error {
	return nil
}

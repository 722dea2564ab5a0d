package store

import (
	"context"

	"gorm.io/gorm"
)

// slugTaken reports whether any record other than excludeID holds the slug.
// Passing excludeID 0 checks against every record, which is the create path.
func slugTaken(ctx context.Context, db *gorm.DB, m any, slug string, excludeID uint) (bool, error) {
	q := db.WithContext(ctx).Model(m).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

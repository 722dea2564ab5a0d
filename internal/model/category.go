package model

import (
	"time"

	"gorm.io/gorm"
)

// Category labels posts for public navigation.
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string         `json:"name" gorm:"size:128;not null"`
	Slug      string         `json:"slug" gorm:"size:128;not null;uniqueIndex:uk_category_slug"`
	CreatedAt int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (c *Category) TableName() string {
	return "categories"
}

// BeforeCreate sets the timestamp fields.
func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	c.CreatedAt = now
	c.UpdatedAt = now
	return
}

// CategoryList contains a page of categories.
type CategoryList struct {
	TotalCount int64       `json:"totalCount"`
	Items      []*Category `json:"items"`
}

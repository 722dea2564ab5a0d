package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/optional"
	"github.com/edukit/campus/pkg/validator"
)

// Gallery is a photo collection from a school event.
type Gallery struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"size:255;not null;uniqueIndex:uk_gallery_slug"`
	Description string         `json:"description" gorm:"type:text"`
	Images      []string       `json:"images" gorm:"serializer:json"`
	EventDate   *time.Time     `json:"event_date"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (g *Gallery) TableName() string {
	return "galleries"
}

// BeforeCreate sets the timestamp fields.
func (g *Gallery) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	g.CreatedAt = now
	g.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (g *Gallery) BeforeUpdate(tx *gorm.DB) (err error) {
	g.UpdatedAt = time.Now().UnixMilli()
	return
}

// GalleryList contains a page of galleries.
type GalleryList struct {
	TotalCount int64      `json:"totalCount"`
	Items      []*Gallery `json:"items"`
}

// GalleryCreate is the normalized create-request parameter object.
type GalleryCreate struct {
	Title       string
	Slug        string
	Description string
	Images      []string
	EventDate   *time.Time
}

// NewGalleryCreate builds a GalleryCreate from a validated payload.
func NewGalleryCreate(payload map[string]any) *GalleryCreate {
	c := &GalleryCreate{
		Title:       validator.StringOr(payload, "title", ""),
		Slug:        validator.StringOr(payload, "slug", ""),
		Description: validator.StringOr(payload, "description", ""),
		Images:      []string{},
		EventDate:   validator.TimeOr(payload, "event_date"),
	}
	if images, ok := validator.CoerceStrings(payload["images"]); ok {
		c.Images = images
	}
	return c
}

// Model materializes the create parameters as a Gallery record.
func (c *GalleryCreate) Model() *Gallery {
	return &Gallery{
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Images:      c.Images,
		EventDate:   c.EventDate,
	}
}

// GalleryPatch is the sparse update-request parameter object.
type GalleryPatch struct {
	Title       optional.Optional[string]
	Slug        optional.Optional[string]
	Description optional.Optional[string]
	Images      optional.Optional[[]string]
	EventDate   optional.Optional[*time.Time]
}

// NewGalleryPatch builds a GalleryPatch from a validated payload.
func NewGalleryPatch(payload map[string]any) *GalleryPatch {
	p := &GalleryPatch{}
	if _, ok := payload["title"]; ok {
		p.Title.Set(validator.StringOr(payload, "title", ""))
	}
	if _, ok := payload["slug"]; ok {
		p.Slug.Set(validator.StringOr(payload, "slug", ""))
	}
	if _, ok := payload["description"]; ok {
		p.Description.Set(validator.StringOr(payload, "description", ""))
	}
	if _, ok := payload["images"]; ok {
		images, _ := validator.CoerceStrings(payload["images"])
		if images == nil {
			images = []string{}
		}
		p.Images.Set(images)
	}
	if _, ok := payload["event_date"]; ok {
		p.EventDate.Set(validator.TimeOr(payload, "event_date"))
	}
	return p
}

// Changes returns the sparse column map for the update.
func (p *GalleryPatch) Changes() map[string]any {
	changes := make(map[string]any)
	if v, ok := p.Title.Get(); ok {
		changes["title"] = v
	}
	if v, ok := p.Slug.Get(); ok {
		changes["slug"] = v
	}
	if v, ok := p.Description.Get(); ok {
		changes["description"] = v
	}
	if v, ok := p.Images.Get(); ok {
		changes["images"] = v
	}
	if v, ok := p.EventDate.Get(); ok {
		changes["event_date"] = v
	}
	return changes
}

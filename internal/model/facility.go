package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/optional"
	"github.com/edukit/campus/pkg/validator"
)

// FacilityMaxCapacity bounds the capacity field.
const FacilityMaxCapacity = 10000

// Facility is a campus building or room presented on the public site.
type Facility struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"size:255;not null;uniqueIndex:uk_facility_slug"`
	Description string         `json:"description" gorm:"type:text"`
	Image       *string        `json:"image" gorm:"size:500"`
	Capacity    int            `json:"capacity" gorm:"not null;default:1"`
	Active      bool           `json:"active" gorm:"default:true"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (f *Facility) TableName() string {
	return "facilities"
}

// BeforeCreate sets the timestamp fields.
func (f *Facility) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	f.CreatedAt = now
	f.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (f *Facility) BeforeUpdate(tx *gorm.DB) (err error) {
	f.UpdatedAt = time.Now().UnixMilli()
	return
}

// FacilityList contains a page of facilities.
type FacilityList struct {
	TotalCount int64       `json:"totalCount"`
	Items      []*Facility `json:"items"`
}

// FacilityCreate is the normalized create-request parameter object.
type FacilityCreate struct {
	Name        string
	Slug        string
	Description string
	Image       *string
	Capacity    int
	Active      bool
}

// NewFacilityCreate builds a FacilityCreate from a validated payload.
func NewFacilityCreate(payload map[string]any) *FacilityCreate {
	return &FacilityCreate{
		Name:        validator.StringOr(payload, "name", ""),
		Slug:        validator.StringOr(payload, "slug", ""),
		Description: validator.StringOr(payload, "description", ""),
		Image:       validator.NullableString(payload, "image"),
		Capacity:    validator.IntOr(payload, "capacity", 1),
		Active:      validator.BoolOr(payload, "active", true),
	}
}

// Model materializes the create parameters as a Facility record.
func (c *FacilityCreate) Model() *Facility {
	return &Facility{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		Capacity:    c.Capacity,
		Active:      c.Active,
	}
}

// FacilityPatch is the sparse update-request parameter object.
type FacilityPatch struct {
	Name        optional.Optional[string]
	Slug        optional.Optional[string]
	Description optional.Optional[string]
	Image       optional.Optional[*string]
	Capacity    optional.Optional[int]
	Active      optional.Optional[bool]
}

// NewFacilityPatch builds a FacilityPatch from a validated payload.
func NewFacilityPatch(payload map[string]any) *FacilityPatch {
	p := &FacilityPatch{}
	if _, ok := payload["name"]; ok {
		p.Name.Set(validator.StringOr(payload, "name", ""))
	}
	if _, ok := payload["slug"]; ok {
		p.Slug.Set(validator.StringOr(payload, "slug", ""))
	}
	if _, ok := payload["description"]; ok {
		p.Description.Set(validator.StringOr(payload, "description", ""))
	}
	if _, ok := payload["image"]; ok {
		p.Image.Set(validator.NullableString(payload, "image"))
	}
	if _, ok := payload["capacity"]; ok {
		p.Capacity.Set(validator.IntOr(payload, "capacity", 1))
	}
	if _, ok := payload["active"]; ok {
		p.Active.Set(validator.BoolOr(payload, "active", true))
	}
	return p
}

// Changes returns the sparse column map for the update.
func (p *FacilityPatch) Changes() map[string]any {
	changes := make(map[string]any)
	if v, ok := p.Name.Get(); ok {
		changes["name"] = v
	}
	if v, ok := p.Slug.Get(); ok {
		changes["slug"] = v
	}
	if v, ok := p.Description.Get(); ok {
		changes["description"] = v
	}
	if v, ok := p.Image.Get(); ok {
		changes["image"] = v
	}
	if v, ok := p.Capacity.Get(); ok {
		changes["capacity"] = v
	}
	if v, ok := p.Active.Get(); ok {
		changes["active"] = v
	}
	return changes
}

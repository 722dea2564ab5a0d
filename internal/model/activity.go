package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/optional"
	"github.com/edukit/campus/pkg/validator"
)

// Activity categories.
const (
	ActivityCategorySports   = "sports"
	ActivityCategoryArts     = "arts"
	ActivityCategoryAcademic = "academic"
	ActivityCategoryService  = "service"
)

// ActivityCategories is the closed category vocabulary.
var ActivityCategories = []string{
	ActivityCategorySports,
	ActivityCategoryArts,
	ActivityCategoryAcademic,
	ActivityCategoryService,
}

// Activity is an extracurricular program students can join.
type Activity struct {
	ID           uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Slug         string         `json:"slug" gorm:"size:255;not null;uniqueIndex:uk_activity_slug"`
	Description  string         `json:"description" gorm:"type:text"`
	Category     string         `json:"category" gorm:"size:32;not null"`
	Requirements []string       `json:"requirements" gorm:"serializer:json"`
	Active       bool           `json:"active" gorm:"default:true"`
	CreatedAt    int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt    int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (a *Activity) TableName() string {
	return "activities"
}

// BeforeCreate sets the timestamp fields.
func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	a.CreatedAt = now
	a.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (a *Activity) BeforeUpdate(tx *gorm.DB) (err error) {
	a.UpdatedAt = time.Now().UnixMilli()
	return
}

// ActivityList contains a page of activities.
type ActivityList struct {
	TotalCount int64       `json:"totalCount"`
	Items      []*Activity `json:"items"`
}

// ActivityCreate is the normalized create-request parameter object.
type ActivityCreate struct {
	Name         string
	Slug         string
	Description  string
	Category     string
	Requirements []string
	Active       bool
}

// NewActivityCreate builds an ActivityCreate from a validated payload.
func NewActivityCreate(payload map[string]any) *ActivityCreate {
	c := &ActivityCreate{
		Name:         validator.StringOr(payload, "name", ""),
		Slug:         validator.StringOr(payload, "slug", ""),
		Description:  validator.StringOr(payload, "description", ""),
		Category:     validator.StringOr(payload, "category", ""),
		Requirements: []string{},
		Active:       validator.BoolOr(payload, "active", true),
	}
	if reqs, ok := validator.CoerceStrings(payload["requirements"]); ok {
		c.Requirements = reqs
	}
	return c
}

// Model materializes the create parameters as an Activity record.
func (c *ActivityCreate) Model() *Activity {
	return &Activity{
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		Category:     c.Category,
		Requirements: c.Requirements,
		Active:       c.Active,
	}
}

// ActivityPatch is the sparse update-request parameter object.
type ActivityPatch struct {
	Name         optional.Optional[string]
	Slug         optional.Optional[string]
	Description  optional.Optional[string]
	Category     optional.Optional[string]
	Requirements optional.Optional[[]string]
	Active       optional.Optional[bool]
}

// NewActivityPatch builds an ActivityPatch from a validated payload.
func NewActivityPatch(payload map[string]any) *ActivityPatch {
	p := &ActivityPatch{}
	if _, ok := payload["name"]; ok {
		p.Name.Set(validator.StringOr(payload, "name", ""))
	}
	if _, ok := payload["slug"]; ok {
		p.Slug.Set(validator.StringOr(payload, "slug", ""))
	}
	if _, ok := payload["description"]; ok {
		p.Description.Set(validator.StringOr(payload, "description", ""))
	}
	if _, ok := payload["category"]; ok {
		p.Category.Set(validator.StringOr(payload, "category", ""))
	}
	if _, ok := payload["requirements"]; ok {
		reqs, _ := validator.CoerceStrings(payload["requirements"])
		if reqs == nil {
			reqs = []string{}
		}
		p.Requirements.Set(reqs)
	}
	if _, ok := payload["active"]; ok {
		p.Active.Set(validator.BoolOr(payload, "active", true))
	}
	return p
}

// Changes returns the sparse column map for the update.
func (p *ActivityPatch) Changes() map[string]any {
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
	if v, ok := p.Category.Get(); ok {
		changes["category"] = v
	}
	if v, ok := p.Requirements.Get(); ok {
		changes["requirements"] = v
	}
	if v, ok := p.Active.Get(); ok {
		changes["active"] = v
	}
	return changes
}

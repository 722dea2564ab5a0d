package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/optional"
	"github.com/edukit/campus/pkg/validator"
)

// Announcement is a time-boxed notice shown on the public site until it
// expires.
type Announcement struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Body        string         `json:"body" gorm:"type:text;not null"`
	Pinned      bool           `json:"pinned" gorm:"default:false"`
	PublishedAt *time.Time     `json:"published_at"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (a *Announcement) TableName() string {
	return "announcements"
}

// BeforeCreate sets the timestamp fields.
func (a *Announcement) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	a.CreatedAt = now
	a.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (a *Announcement) BeforeUpdate(tx *gorm.DB) (err error) {
	a.UpdatedAt = time.Now().UnixMilli()
	return
}

// AnnouncementList contains a page of announcements.
type AnnouncementList struct {
	TotalCount int64           `json:"totalCount"`
	Items      []*Announcement `json:"items"`
}

// AnnouncementCreate is the normalized create-request parameter object.
type AnnouncementCreate struct {
	Title       string
	Body        string
	Pinned      bool
	PublishedAt *time.Time
	ExpiresAt   *time.Time
}

// NewAnnouncementCreate builds an AnnouncementCreate from a validated
// payload.
func NewAnnouncementCreate(payload map[string]any) *AnnouncementCreate {
	return &AnnouncementCreate{
		Title:       validator.StringOr(payload, "title", ""),
		Body:        validator.StringOr(payload, "body", ""),
		Pinned:      validator.BoolOr(payload, "pinned", false),
		PublishedAt: validator.TimeOr(payload, "published_at"),
		ExpiresAt:   validator.TimeOr(payload, "expires_at"),
	}
}

// Model materializes the create parameters as an Announcement record.
func (c *AnnouncementCreate) Model() *Announcement {
	return &Announcement{
		Title:       c.Title,
		Body:        c.Body,
		Pinned:      c.Pinned,
		PublishedAt: c.PublishedAt,
		ExpiresAt:   c.ExpiresAt,
	}
}

// AnnouncementPatch is the sparse update-request parameter object.
type AnnouncementPatch struct {
	Title       optional.Optional[string]
	Body        optional.Optional[string]
	Pinned      optional.Optional[bool]
	PublishedAt optional.Optional[*time.Time]
	ExpiresAt   optional.Optional[*time.Time]
}

// NewAnnouncementPatch builds an AnnouncementPatch from a validated payload.
func NewAnnouncementPatch(payload map[string]any) *AnnouncementPatch {
	p := &AnnouncementPatch{}
	if _, ok := payload["title"]; ok {
		p.Title.Set(validator.StringOr(payload, "title", ""))
	}
	if _, ok := payload["body"]; ok {
		p.Body.Set(validator.StringOr(payload, "body", ""))
	}
	if _, ok := payload["pinned"]; ok {
		p.Pinned.Set(validator.BoolOr(payload, "pinned", false))
	}
	if _, ok := payload["published_at"]; ok {
		p.PublishedAt.Set(validator.TimeOr(payload, "published_at"))
	}
	if _, ok := payload["expires_at"]; ok {
		p.ExpiresAt.Set(validator.TimeOr(payload, "expires_at"))
	}
	return p
}

// Changes returns the sparse column map for the update.
func (p *AnnouncementPatch) Changes() map[string]any {
	changes := make(map[string]any)
	if v, ok := p.Title.Get(); ok {
		changes["title"] = v
	}
	if v, ok := p.Body.Get(); ok {
		changes["body"] = v
	}
	if v, ok := p.Pinned.Get(); ok {
		changes["pinned"] = v
	}
	if v, ok := p.PublishedAt.Get(); ok {
		changes["published_at"] = v
	}
	if v, ok := p.ExpiresAt.Get(); ok {
		changes["expires_at"] = v
	}
	return changes
}

package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/optional"
	"github.com/edukit/campus/pkg/validator"
)

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post content types.
const (
	PostTypeNews    = "news"
	PostTypeArticle = "article"
	PostTypeEvent   = "event"
)

// PostStatuses is the closed status vocabulary.
var PostStatuses = []string{PostStatusDraft, PostStatusPublished, PostStatusArchived}

// PostTypes is the closed content-type vocabulary.
var PostTypes = []string{PostTypeNews, PostTypeArticle, PostTypeEvent}

// Post is a news item, article or event notice on the public site.
type Post struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"size:255;not null;uniqueIndex:uk_post_slug"`
	Excerpt     *string        `json:"excerpt" gorm:"size:500"`
	Body        string         `json:"body" gorm:"type:text;not null"`
	Image       *string        `json:"image" gorm:"size:500"`
	Status      string         `json:"status" gorm:"size:32;not null;default:draft;index:idx_post_status"`
	ContentType string         `json:"content_type" gorm:"size:32;not null;default:news"`
	Featured    bool           `json:"featured" gorm:"default:false"`
	Pinned      bool           `json:"pinned" gorm:"default:false"`
	PublishedAt *time.Time     `json:"published_at"`
	Categories  []*Category    `json:"categories" gorm:"many2many:post_categories"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (p *Post) TableName() string {
	return "posts"
}

// BeforeCreate sets the timestamp fields.
func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	p.CreatedAt = now
	p.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (p *Post) BeforeUpdate(tx *gorm.DB) (err error) {
	p.UpdatedAt = time.Now().UnixMilli()
	return
}

// PostList contains a page of posts.
type PostList struct {
	TotalCount int64   `json:"totalCount"`
	Items      []*Post `json:"items"`
}

// PostCreate is the normalized create-request parameter object. Every field
// is populated; unsupplied optional fields carry their documented default.
// Read-only after construction.
type PostCreate struct {
	Title       string
	Slug        string
	Excerpt     *string
	Body        string
	Image       *string
	Status      string
	ContentType string
	Featured    bool
	Pinned      bool
	CategoryIDs []uint
	PublishedAt *time.Time
}

// NewPostCreate builds a PostCreate from a validated payload, substituting
// defaults for any field the caller did not supply.
func NewPostCreate(payload map[string]any) *PostCreate {
	c := &PostCreate{
		Title:       validator.StringOr(payload, "title", ""),
		Slug:        validator.StringOr(payload, "slug", ""),
		Excerpt:     validator.NullableString(payload, "excerpt"),
		Body:        validator.StringOr(payload, "body", ""),
		Image:       validator.NullableString(payload, "image"),
		Status:      validator.StringOr(payload, "status", PostStatusDraft),
		ContentType: validator.StringOr(payload, "content_type", PostTypeNews),
		Featured:    validator.BoolOr(payload, "featured", false),
		Pinned:      validator.BoolOr(payload, "pinned", false),
		CategoryIDs: []uint{},
		PublishedAt: validator.TimeOr(payload, "published_at"),
	}
	if ids, ok := validator.CoerceIDs(payload["categories"]); ok {
		c.CategoryIDs = ids
	}
	return c
}

// Model materializes the create parameters as a Post record.
func (c *PostCreate) Model() *Post {
	return &Post{
		Title:       c.Title,
		Slug:        c.Slug,
		Excerpt:     c.Excerpt,
		Body:        c.Body,
		Image:       c.Image,
		Status:      c.Status,
		ContentType: c.ContentType,
		Featured:    c.Featured,
		Pinned:      c.Pinned,
		PublishedAt: c.PublishedAt,
	}
}

// PostPatch is the sparse update-request parameter object. A field appears
// only when the caller's payload contained its key; an explicitly supplied
// empty or false value is kept so it can clear the stored one. Read-only
// after construction.
type PostPatch struct {
	Title       optional.Optional[string]
	Slug        optional.Optional[string]
	Excerpt     optional.Optional[*string]
	Body        optional.Optional[string]
	Image       optional.Optional[*string]
	Status      optional.Optional[string]
	ContentType optional.Optional[string]
	Featured    optional.Optional[bool]
	Pinned      optional.Optional[bool]
	CategoryIDs optional.Optional[[]uint]
	PublishedAt optional.Optional[*time.Time]
}

// NewPostPatch builds a PostPatch from a validated payload. Presence is
// judged by key existence, never by value truthiness.
func NewPostPatch(payload map[string]any) *PostPatch {
	p := &PostPatch{}
	if _, ok := payload["title"]; ok {
		p.Title.Set(validator.StringOr(payload, "title", ""))
	}
	if _, ok := payload["slug"]; ok {
		p.Slug.Set(validator.StringOr(payload, "slug", ""))
	}
	if _, ok := payload["excerpt"]; ok {
		p.Excerpt.Set(validator.NullableString(payload, "excerpt"))
	}
	if _, ok := payload["body"]; ok {
		p.Body.Set(validator.StringOr(payload, "body", ""))
	}
	if _, ok := payload["image"]; ok {
		p.Image.Set(validator.NullableString(payload, "image"))
	}
	if _, ok := payload["status"]; ok {
		p.Status.Set(validator.StringOr(payload, "status", ""))
	}
	if _, ok := payload["content_type"]; ok {
		p.ContentType.Set(validator.StringOr(payload, "content_type", ""))
	}
	if _, ok := payload["featured"]; ok {
		p.Featured.Set(validator.BoolOr(payload, "featured", false))
	}
	if _, ok := payload["pinned"]; ok {
		p.Pinned.Set(validator.BoolOr(payload, "pinned", false))
	}
	if _, ok := payload["categories"]; ok {
		ids, _ := validator.CoerceIDs(payload["categories"])
		if ids == nil {
			ids = []uint{}
		}
		p.CategoryIDs.Set(ids)
	}
	if _, ok := payload["published_at"]; ok {
		p.PublishedAt.Set(validator.TimeOr(payload, "published_at"))
	}
	return p
}

// Changes returns the sparse column map for the update. Absent fields are
// omitted entirely; present-but-cleared fields map to nil. Category
// assignments are associations and are applied separately.
func (p *PostPatch) Changes() map[string]any {
	changes := make(map[string]any)
	if v, ok := p.Title.Get(); ok {
		changes["title"] = v
	}
	if v, ok := p.Slug.Get(); ok {
		changes["slug"] = v
	}
	if v, ok := p.Excerpt.Get(); ok {
		changes["excerpt"] = v
	}
	if v, ok := p.Body.Get(); ok {
		changes["body"] = v
	}
	if v, ok := p.Image.Get(); ok {
		changes["image"] = v
	}
	if v, ok := p.Status.Get(); ok {
		changes["status"] = v
	}
	if v, ok := p.ContentType.Get(); ok {
		changes["content_type"] = v
	}
	if v, ok := p.Featured.Get(); ok {
		changes["featured"] = v
	}
	if v, ok := p.Pinned.Get(); ok {
		changes["pinned"] = v
	}
	if v, ok := p.PublishedAt.Get(); ok {
		changes["published_at"] = v
	}
	return changes
}

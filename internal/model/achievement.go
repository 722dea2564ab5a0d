package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/optional"
	"github.com/edukit/campus/pkg/validator"
)

// Achievement levels.
const (
	AchievementLevelSchool   = "school"
	AchievementLevelDistrict = "district"
	AchievementLevelNational = "national"
)

// AchievementLevels is the closed level vocabulary.
var AchievementLevels = []string{
	AchievementLevelSchool,
	AchievementLevelDistrict,
	AchievementLevelNational,
}

// Achievement is an award or honor earned by students or the school.
type Achievement struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Recipient   string         `json:"recipient" gorm:"size:255"`
	Level       string         `json:"level" gorm:"size:32;not null;default:school"`
	AwardedAt   *time.Time     `json:"awarded_at"`
	Featured    bool           `json:"featured" gorm:"default:false"`
	CreatedAt   int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt   int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (a *Achievement) TableName() string {
	return "achievements"
}

// BeforeCreate sets the timestamp fields.
func (a *Achievement) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	a.CreatedAt = now
	a.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (a *Achievement) BeforeUpdate(tx *gorm.DB) (err error) {
	a.UpdatedAt = time.Now().UnixMilli()
	return
}

// AchievementList contains a page of achievements.
type AchievementList struct {
	TotalCount int64          `json:"totalCount"`
	Items      []*Achievement `json:"items"`
}

// AchievementCreate is the normalized create-request parameter object.
type AchievementCreate struct {
	Title       string
	Description string
	Recipient   string
	Level       string
	AwardedAt   *time.Time
	Featured    bool
}

// NewAchievementCreate builds an AchievementCreate from a validated payload.
func NewAchievementCreate(payload map[string]any) *AchievementCreate {
	return &AchievementCreate{
		Title:       validator.StringOr(payload, "title", ""),
		Description: validator.StringOr(payload, "description", ""),
		Recipient:   validator.StringOr(payload, "recipient", ""),
		Level:       validator.StringOr(payload, "level", AchievementLevelSchool),
		AwardedAt:   validator.TimeOr(payload, "awarded_at"),
		Featured:    validator.BoolOr(payload, "featured", false),
	}
}

// Model materializes the create parameters as an Achievement record.
func (c *AchievementCreate) Model() *Achievement {
	return &Achievement{
		Title:       c.Title,
		Description: c.Description,
		Recipient:   c.Recipient,
		Level:       c.Level,
		AwardedAt:   c.AwardedAt,
		Featured:    c.Featured,
	}
}

// AchievementPatch is the sparse update-request parameter object.
type AchievementPatch struct {
	Title       optional.Optional[string]
	Description optional.Optional[string]
	Recipient   optional.Optional[string]
	Level       optional.Optional[string]
	AwardedAt   optional.Optional[*time.Time]
	Featured    optional.Optional[bool]
}

// NewAchievementPatch builds an AchievementPatch from a validated payload.
func NewAchievementPatch(payload map[string]any) *AchievementPatch {
	p := &AchievementPatch{}
	if _, ok := payload["title"]; ok {
		p.Title.Set(validator.StringOr(payload, "title", ""))
	}
	if _, ok := payload["description"]; ok {
		p.Description.Set(validator.StringOr(payload, "description", ""))
	}
	if _, ok := payload["recipient"]; ok {
		p.Recipient.Set(validator.StringOr(payload, "recipient", ""))
	}
	if _, ok := payload["level"]; ok {
		p.Level.Set(validator.StringOr(payload, "level", ""))
	}
	if _, ok := payload["awarded_at"]; ok {
		p.AwardedAt.Set(validator.TimeOr(payload, "awarded_at"))
	}
	if _, ok := payload["featured"]; ok {
		p.Featured.Set(validator.BoolOr(payload, "featured", false))
	}
	return p
}

// Changes returns the sparse column map for the update.
func (p *AchievementPatch) Changes() map[string]any {
	changes := make(map[string]any)
	if v, ok := p.Title.Get(); ok {
		changes["title"] = v
	}
	if v, ok := p.Description.Get(); ok {
		changes["description"] = v
	}
	if v, ok := p.Recipient.Get(); ok {
		changes["recipient"] = v
	}
	if v, ok := p.Level.Get(); ok {
		changes["level"] = v
	}
	if v, ok := p.AwardedAt.Get(); ok {
		changes["awarded_at"] = v
	}
	if v, ok := p.Featured.Get(); ok {
		changes["featured"] = v
	}
	return changes
}

// Package model defines the persistence models and the request parameter
// objects built from validated payloads.
package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User statuses.
const (
	UserStatusEnabled  = 1
	UserStatusDisabled = 0
)

// User represents an administrative account.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string         `json:"username" gorm:"size:64;not null;uniqueIndex:uk_username"`
	Email     *string        `json:"email" gorm:"size:128;uniqueIndex:uk_email"`
	Password  string         `json:"-" gorm:"size:255;not null"`
	Name      string         `json:"name" gorm:"size:128"`
	Role      string         `json:"role" gorm:"size:32;not null;default:editor"`
	Status    int            `json:"status" gorm:"default:1;index:idx_status"`
	CreatedAt int64          `json:"created_at" gorm:"autoCreateTime:milli"`
	UpdatedAt int64          `json:"updated_at" gorm:"autoUpdateTime:milli"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for GORM.
func (u *User) TableName() string {
	return "users"
}

// Enabled reports whether the account may log in.
func (u *User) Enabled() bool {
	return u.Status == UserStatusEnabled
}

// BeforeCreate sets the timestamp fields.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now().UnixMilli()
	u.CreatedAt = now
	u.UpdatedAt = now
	return
}

// BeforeUpdate sets the UpdatedAt field.
func (u *User) BeforeUpdate(tx *gorm.DB) (err error) {
	u.UpdatedAt = time.Now().UnixMilli()
	return
}

// UserList contains a page of users.
type UserList struct {
	TotalCount int64   `json:"totalCount"`
	Items      []*User `json:"items"`
}

// UserSummary is the client-facing projection returned on login and whoami.
type UserSummary struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
}

// Summary projects the user for client responses.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
	}
}

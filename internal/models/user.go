// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the NutriHub platform. Accounts are managed by
// the main nutrition service; this API reads them and stores social relations
// against their IDs.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	DisplayName string         `json:"display_name"`
	Email       string         `gorm:"unique;not null" json:"-"`
	Password    string         `gorm:"not null" json:"-"`
	Bio         string         `json:"bio,omitempty"`
	Avatar      string         `json:"avatar,omitempty"`
	IsAdmin     bool           `gorm:"default:false" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// PublicUser is the sanitized projection returned by user listing endpoints.
type PublicUser struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Public returns the sanitized projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

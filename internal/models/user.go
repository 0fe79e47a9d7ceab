package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. The ID is an opaque UUID string so it can
// travel through tokens and wire frames without exposing database internals.
type User struct {
	ID string `gorm:"primaryKey" json:"id"`
	// Username is the public handle shown in the roster.
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	// PasswordHash is the bcrypt hash of the account password. Never serialized.
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// BeforeCreate — GORM hook that assigns a fresh UUID when the ID is unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. Roles are assigned server-side;
// signup always produces RoleUser.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account holder. Password holds a bcrypt hash, never plaintext.
// ResetToken and ResetTokenExpiry are both set while a password reset is
// pending and both nil otherwise.
type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string     `gorm:"size:255;not null" json:"name"`
	Email            string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Role             Role       `gorm:"size:20;not null;default:'user'" json:"role"`
	ResetToken       *string    `gorm:"size:64;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

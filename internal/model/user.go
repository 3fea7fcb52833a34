package model

import (
	"time"

	"gorm.io/gorm"
)

// Role classifies an account.
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// User represents an account on the platform: students looking for rooms,
// owners listing properties, and admins.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"size:255;not null;index"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role           `json:"role" gorm:"type:varchar(20);not null;default:'student';index"`
	Phone        string         `json:"phone,omitempty" gorm:"size:30"`
	University   string         `json:"university,omitempty" gorm:"size:255"`
	Bio          string         `json:"bio,omitempty" gorm:"type:text"`
	AvatarPath   string         `json:"avatar_path,omitempty" gorm:"size:512"`
	CINNumber    string         `json:"-" gorm:"size:30"` // national ID; processed externally
	CINVerified  bool           `json:"cin_verified" gorm:"default:false;index"`
	EmailVerified bool          `json:"email_verified" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"` // accounts are never hard-deleted

	// Relations
	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:OwnerID"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnnouncementType classifies a board post.
type AnnouncementType string

const (
	AnnouncementLookingForRoom     AnnouncementType = "looking_for_room"
	AnnouncementLookingForRoommate AnnouncementType = "looking_for_roommate"
	AnnouncementGeneral            AnnouncementType = "general"
)

// Announcement is a free-text post on the roommate board.
type Announcement struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Content   string           `json:"content" gorm:"type:text;not null"`
	Type      AnnouncementType `json:"type" gorm:"type:varchar(30);not null;default:'general';index"`
	City      string           `json:"city,omitempty" gorm:"size:100;index"`
	Budget    decimal.Decimal  `json:"budget" gorm:"type:decimal(12,2);default:0"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

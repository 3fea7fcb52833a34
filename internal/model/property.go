package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeStudio    PropertyType = "studio"
	PropertyTypeRoom      PropertyType = "room"
)

// Property represents a rental listing owned by a user.
type Property struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OwnerID     uint            `json:"owner_id" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Address     string          `json:"address" gorm:"size:512;not null"`
	City        string          `json:"city" gorm:"size:100;not null;index"`
	Type        PropertyType    `json:"type" gorm:"type:varchar(20);not null;default:'apartment';index"`
	Rent        decimal.Decimal `json:"rent" gorm:"type:decimal(12,2);not null"`
	Bedrooms    int             `json:"bedrooms" gorm:"not null;default:1"`
	Bathrooms   int             `json:"bathrooms" gorm:"not null;default:1"`
	AreaSqM     int             `json:"area_sqm"`
	Available   bool            `json:"available" gorm:"default:true;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// PropertyFilter carries the whitelisted search fields. Zero values mean
// "no constraint"; nothing here is ever interpolated into SQL text.
type PropertyFilter struct {
	City        string
	Type        PropertyType
	MaxRent     decimal.Decimal
	MinBedrooms int
}

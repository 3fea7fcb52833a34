package model

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the status of a viewing appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}

// legalTransitions is the whole state machine: cancelled and completed are
// terminal, everything not listed is rejected.
var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// CanTransition reports whether from -> to is a legal status change.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment is a viewing request from a student to a property owner.
// OwnerID always matches the property's stored owner; that is checked at
// creation time.
type Appointment struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	PropertyID      uint              `json:"property_id" gorm:"not null;index"`
	StudentID       uint              `json:"student_id" gorm:"not null;index"`
	OwnerID         uint              `json:"owner_id" gorm:"not null;index"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	AppointmentDate time.Time         `json:"appointment_date" gorm:"not null"`
	Message         string            `json:"message,omitempty" gorm:"type:text"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `json:"-" gorm:"index"`

	// Relations
	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
	Student  User     `json:"-" gorm:"foreignKey:StudentID"`
	Owner    User     `json:"-" gorm:"foreignKey:OwnerID"`
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"roomlink/internal/model"
)

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Update(ctx context.Context, appointment *model.Appointment) error
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]model.Appointment, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Appointment, error)
}

type appointmentRepository struct {
	base
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(db *gorm.DB, timeout time.Duration) AppointmentRepository {
	return &appointmentRepository{base{db: db, timeout: timeout}}
}

// Create creates a new appointment record.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(appointment).Error
}

// Update updates an existing appointment record.
func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Save(appointment).Error
}

// FindByID finds an appointment by ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var appointment model.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListByStudent lists a student's appointments, newest first.
func (r *appointmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Appointment, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var appointments []model.Appointment
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("appointment_date DESC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListByOwner lists an owner's appointments, newest first.
func (r *appointmentRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Appointment, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	var appointments []model.Appointment
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("appointment_date DESC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

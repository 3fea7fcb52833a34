package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "roomlink/internal/errors"
	"roomlink/internal/model"
	"roomlink/internal/repository"
)

// AppointmentService handles viewing-appointment scheduling.
type AppointmentService interface {
	CreateAppointment(ctx context.Context, propertyID, studentID, ownerID uint, date time.Time, message string) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status model.AppointmentStatus) (*model.Appointment, error)
	ListForUser(ctx context.Context, userID uint, role model.Role) ([]model.Appointment, error)
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	propertyRepo    repository.PropertyRepository
	userRepo        repository.UserRepository
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
	}
}

// CreateAppointment records a pending viewing request. The supplied owner
// must be the property's stored owner; a mismatch is rejected before any row
// is written.
func (s *appointmentService) CreateAppointment(ctx context.Context, propertyID, studentID, ownerID uint, date time.Time, message string) (*model.Appointment, error) {
	if propertyID == 0 || studentID == 0 || ownerID == 0 || date.IsZero() {
		return nil, apperrors.ErrValidation
	}

	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, studentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	if property.OwnerID != ownerID {
		return nil, apperrors.ErrOwnerMismatch
	}

	appointment := &model.Appointment{
		PropertyID:      propertyID,
		StudentID:       studentID,
		OwnerID:         ownerID,
		Status:          model.AppointmentStatusPending,
		AppointmentDate: date,
		Message:         message,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appointment, nil
}

// UpdateStatus applies a status change through the legal-transition table.
// Setting the current status again is a no-op success; anything not in the
// table is rejected.
func (s *appointmentService) UpdateStatus(ctx context.Context, id uint, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}

	if appointment.Status == status {
		return appointment, nil
	}
	if !appointment.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, appointment.Status, status)
	}

	appointment.Status = status
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return appointment, nil
}

// ListForUser returns a student's requests or an owner's incoming requests.
func (s *appointmentService) ListForUser(ctx context.Context, userID uint, role model.Role) ([]model.Appointment, error) {
	if role == model.RoleOwner {
		return s.appointmentRepo.ListByOwner(ctx, userID)
	}
	return s.appointmentRepo.ListByStudent(ctx, userID)
}

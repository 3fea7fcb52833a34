package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "roomlink/internal/errors"
	"roomlink/internal/model"
)

func TestAppointmentService_CreateAppointment(t *testing.T) {
	date := time.Now().Add(48 * time.Hour)
	property := &model.Property{ID: 3, OwnerID: 20}
	student := &model.User{ID: 10, Role: model.RoleStudent}

	tests := []struct {
		name          string
		propertyID    uint
		studentID     uint
		ownerID       uint
		setupMock     func(*MockAppointmentRepository, *MockPropertyRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name:       "successful request",
			propertyID: 3,
			studentID:  10,
			ownerID:    20,
			setupMock: func(mAppt *MockAppointmentRepository, mProp *MockPropertyRepository, mUser *MockUserRepository) {
				mProp.On("FindByID", mock.Anything, uint(3)).Return(property, nil)
				mUser.On("FindByID", mock.Anything, uint(10)).Return(student, nil)
				mAppt.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)
			},
		},
		{
			name:       "owner mismatch is rejected with no row written",
			propertyID: 3,
			studentID:  10,
			ownerID:    99,
			setupMock: func(mAppt *MockAppointmentRepository, mProp *MockPropertyRepository, mUser *MockUserRepository) {
				mProp.On("FindByID", mock.Anything, uint(3)).Return(property, nil)
				mUser.On("FindByID", mock.Anything, uint(10)).Return(student, nil)
			},
			expectedError: apperrors.ErrOwnerMismatch,
		},
		{
			name:       "unknown property",
			propertyID: 99,
			studentID:  10,
			ownerID:    20,
			setupMock: func(mAppt *MockAppointmentRepository, mProp *MockPropertyRepository, mUser *MockUserRepository) {
				mProp.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPropertyNotFound,
		},
		{
			name:       "unknown student",
			propertyID: 3,
			studentID:  99,
			ownerID:    20,
			setupMock: func(mAppt *MockAppointmentRepository, mProp *MockPropertyRepository, mUser *MockUserRepository) {
				mProp.On("FindByID", mock.Anything, uint(3)).Return(property, nil)
				mUser.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mAppt := new(MockAppointmentRepository)
			mProp := new(MockPropertyRepository)
			mUser := new(MockUserRepository)
			tt.setupMock(mAppt, mProp, mUser)

			svc := NewAppointmentService(mAppt, mProp, mUser)
			appointment, err := svc.CreateAppointment(context.Background(), tt.propertyID, tt.studentID, tt.ownerID, date, "after class?")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, appointment)
				mAppt.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.AppointmentStatusPending, appointment.Status)
				assert.Equal(t, date, appointment.AppointmentDate)
			}

			mAppt.AssertExpectations(t)
			mProp.AssertExpectations(t)
			mUser.AssertExpectations(t)
		})
	}
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		current       model.AppointmentStatus
		target        model.AppointmentStatus
		expectUpdate  bool
		expectedError error
	}{
		{name: "pending to confirmed", current: model.AppointmentStatusPending, target: model.AppointmentStatusConfirmed, expectUpdate: true},
		{name: "pending to cancelled", current: model.AppointmentStatusPending, target: model.AppointmentStatusCancelled, expectUpdate: true},
		{name: "confirmed to completed", current: model.AppointmentStatusConfirmed, target: model.AppointmentStatusCompleted, expectUpdate: true},
		{name: "confirmed to cancelled", current: model.AppointmentStatusConfirmed, target: model.AppointmentStatusCancelled, expectUpdate: true},
		{name: "same status is a no-op", current: model.AppointmentStatusPending, target: model.AppointmentStatusPending},
		{name: "pending cannot complete", current: model.AppointmentStatusPending, target: model.AppointmentStatusCompleted, expectedError: apperrors.ErrInvalidTransition},
		{name: "completed is terminal", current: model.AppointmentStatusCompleted, target: model.AppointmentStatusPending, expectedError: apperrors.ErrInvalidTransition},
		{name: "cancelled is terminal", current: model.AppointmentStatusCancelled, target: model.AppointmentStatusConfirmed, expectedError: apperrors.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mAppt := new(MockAppointmentRepository)
			mProp := new(MockPropertyRepository)
			mUser := new(MockUserRepository)

			mAppt.On("FindByID", mock.Anything, uint(1)).
				Return(&model.Appointment{ID: 1, Status: tt.current}, nil)
			if tt.expectUpdate {
				mAppt.On("Update", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)
			}

			svc := NewAppointmentService(mAppt, mProp, mUser)
			appointment, err := svc.UpdateStatus(context.Background(), 1, tt.target)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, appointment)
				mAppt.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.target, appointment.Status)
			}

			mAppt.AssertExpectations(t)
		})
	}

	t.Run("unknown appointment", func(t *testing.T) {
		mAppt := new(MockAppointmentRepository)
		mAppt.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAppointmentService(mAppt, new(MockPropertyRepository), new(MockUserRepository))
		appointment, err := svc.UpdateStatus(context.Background(), 99, model.AppointmentStatusConfirmed)

		assert.ErrorIs(t, err, apperrors.ErrAppointmentNotFound)
		assert.Nil(t, appointment)
	})

	t.Run("unknown status value", func(t *testing.T) {
		mAppt := new(MockAppointmentRepository)

		svc := NewAppointmentService(mAppt, new(MockPropertyRepository), new(MockUserRepository))
		appointment, err := svc.UpdateStatus(context.Background(), 1, model.AppointmentStatus("archived"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
		assert.Nil(t, appointment)
		mAppt.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestAppointmentService_ListForUser(t *testing.T) {
	t.Run("owners see incoming requests", func(t *testing.T) {
		mAppt := new(MockAppointmentRepository)
		mAppt.On("ListByOwner", mock.Anything, uint(20)).Return([]model.Appointment{{ID: 1}}, nil)

		svc := NewAppointmentService(mAppt, new(MockPropertyRepository), new(MockUserRepository))
		appointments, err := svc.ListForUser(context.Background(), 20, model.RoleOwner)

		assert.NoError(t, err)
		assert.Len(t, appointments, 1)
		mAppt.AssertExpectations(t)
	})

	t.Run("students see their own requests", func(t *testing.T) {
		mAppt := new(MockAppointmentRepository)
		mAppt.On("ListByStudent", mock.Anything, uint(10)).Return([]model.Appointment{}, nil)

		svc := NewAppointmentService(mAppt, new(MockPropertyRepository), new(MockUserRepository))
		_, err := svc.ListForUser(context.Background(), 10, model.RoleStudent)

		assert.NoError(t, err)
		mAppt.AssertExpectations(t)
	})
}

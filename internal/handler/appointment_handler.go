package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"roomlink/internal/model"
	"roomlink/internal/response"
	"roomlink/internal/service"
)

// AppointmentHandler handles viewing-appointment endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest represents a viewing request.
type CreateAppointmentRequest struct {
	PropertyID      uint   `json:"propertyId" validate:"required"`
	StudentID       uint   `json:"studentId" validate:"required"`
	OwnerID         uint   `json:"ownerId" validate:"required"`
	AppointmentDate string `json:"appointmentDate" validate:"required"`
	Message         string `json:"message"`
}

// UpdateStatusRequest represents a status change.
type UpdateStatusRequest struct {
	ID     uint   `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// Create godoc
// @Summary Request a property viewing
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}

	date, err := time.Parse(time.RFC3339, req.AppointmentDate)
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "appointmentDate must be RFC3339")
	}

	appointment, err := h.appointmentService.CreateAppointment(
		c.Request().Context(),
		req.PropertyID,
		req.StudentID,
		req.OwnerID,
		date,
		req.Message,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "appointment requested", appointment)
}

// UpdateStatus godoc
// @Summary Change an appointment's status
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/status [put]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request().Context(), req.ID, model.AppointmentStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "appointment updated", appointment)
}

// List godoc
// @Summary List the caller's appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	appointments, err := h.appointmentService.ListForUser(c.Request().Context(), claims.UserID, callerRole(claims))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "appointments", appointments)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"roomlink/internal/model"
	"roomlink/internal/response"
	"roomlink/internal/service"
)

// AnnouncementHandler handles roommate board endpoints.
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(announcementService service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// CreateAnnouncementRequest represents a board post.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=looking_for_room looking_for_roommate general"`
	City    string `json:"city"`
	Budget  string `json:"budget"`
}

// Create godoc
// @Summary Post an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	var req CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}

	announcement := &model.Announcement{
		UserID:  claims.UserID,
		Title:   req.Title,
		Content: req.Content,
		Type:    model.AnnouncementType(req.Type),
		City:    req.City,
	}
	if req.Budget != "" {
		budget, err := decimal.NewFromString(req.Budget)
		if err != nil || budget.IsNegative() {
			return response.Fail(c, http.StatusBadRequest, "invalid budget")
		}
		announcement.Budget = budget
	}

	created, err := h.announcementService.CreateAnnouncement(c.Request().Context(), announcement)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "announcement posted", created)
}

// Get godoc
// @Summary Get announcement by id
// @Tags announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}

	announcement, err := h.announcementService.GetAnnouncement(c.Request().Context(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "announcement", announcement)
}

// List godoc
// @Summary List announcements, newest first
// @Tags announcements
// @Produce json
// @Param userId query int false "Only this user's posts"
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	if raw := c.QueryParam("userId"); raw != "" {
		userID, err := strconv.Atoi(raw)
		if err != nil || userID <= 0 {
			return response.Fail(c, http.StatusBadRequest, "invalid userId")
		}
		announcements, err := h.announcementService.ListByUser(c.Request().Context(), uint(userID))
		if err != nil {
			return response.Error(c, err)
		}
		return response.OK(c, "announcements", announcements)
	}

	announcements, err := h.announcementService.ListAnnouncements(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "announcements", announcements)
}

// Delete godoc
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.announcementService.DeleteAnnouncement(c.Request().Context(), uint(id), claims.UserID, callerRole(claims)); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "announcement deleted", nil)
}

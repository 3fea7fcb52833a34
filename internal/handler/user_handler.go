package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"roomlink/internal/model"
	"roomlink/internal/response"
	"roomlink/internal/service"
)

// UserHandler handles user directory endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest carries the editable profile fields. Absent fields
// are left untouched.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	University *string `json:"university"`
	Bio        *string `json:"bio"`
	AvatarPath *string `json:"avatar_path"`
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}

	user, err := h.userService.GetUser(c.Request().Context(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "user", user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "users", users)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}
	// users edit themselves; admins edit anyone
	if claims.UserID != uint(id) && callerRole(claims) != model.RoleAdmin {
		return response.Fail(c, http.StatusForbidden, "cannot edit another user's profile")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), uint(id), service.ProfileUpdate{
		Name:       req.Name,
		Phone:      req.Phone,
		University: req.University,
		Bio:        req.Bio,
		AvatarPath: req.AvatarPath,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "profile updated", user)
}

// VerifyCIN godoc
// @Summary Mark a user's national ID as verified (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/verify [post]
func (h *UserHandler) VerifyCIN(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}
	if callerRole(claims) != model.RoleAdmin {
		return response.Fail(c, http.StatusForbidden, "admin only")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}

	user, err := h.userService.VerifyCIN(c.Request().Context(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "user verified", user)
}

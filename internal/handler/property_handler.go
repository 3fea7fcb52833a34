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

// PropertyHandler handles property catalog endpoints.
type PropertyHandler struct {
	propertyService service.PropertyService
}

// NewPropertyHandler creates a new property handler.
func NewPropertyHandler(propertyService service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// CreatePropertyRequest represents a listing creation request.
type CreatePropertyRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=apartment house studio room"`
	Rent        string `json:"rent" validate:"required"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	AreaSqM     int    `json:"area_sqm"`
}

// UpdatePropertyRequest carries the editable listing fields.
type UpdatePropertyRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Type        *string `json:"type"`
	Rent        *string `json:"rent"`
	Bedrooms    *int    `json:"bedrooms"`
	Bathrooms   *int    `json:"bathrooms"`
	AreaSqM     *int    `json:"area_sqm"`
	Available   *bool   `json:"available"`
}

// Create godoc
// @Summary Create a property listing
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePropertyRequest true "Listing data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	var req CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}

	rent, err := decimal.NewFromString(req.Rent)
	if err != nil || rent.IsNegative() {
		return response.Fail(c, http.StatusBadRequest, "invalid rent")
	}

	propertyType := model.PropertyType(req.Type)
	if propertyType == "" {
		propertyType = model.PropertyTypeApartment
	}

	property := &model.Property{
		OwnerID:     claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Type:        propertyType,
		Rent:        rent,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqM:     req.AreaSqM,
		Available:   true,
	}

	created, err := h.propertyService.CreateProperty(c.Request().Context(), property)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "property created", created)
}

// Get godoc
// @Summary Get property by id
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}

	property, err := h.propertyService.GetProperty(c.Request().Context(), uint(id))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "property", property)
}

// Search godoc
// @Summary Search available properties
// @Tags properties
// @Produce json
// @Param city query string false "City"
// @Param type query string false "Property type"
// @Param maxRent query string false "Maximum monthly rent"
// @Param minBedrooms query int false "Minimum bedrooms"
// @Success 200 {object} response.Envelope
// @Router /properties/search [get]
func (h *PropertyHandler) Search(c echo.Context) error {
	filter := model.PropertyFilter{
		City: c.QueryParam("city"),
		Type: model.PropertyType(c.QueryParam("type")),
	}
	if raw := c.QueryParam("maxRent"); raw != "" {
		maxRent, err := decimal.NewFromString(raw)
		if err != nil {
			return response.Fail(c, http.StatusBadRequest, "invalid maxRent")
		}
		filter.MaxRent = maxRent
	}
	if raw := c.QueryParam("minBedrooms"); raw != "" {
		minBedrooms, err := strconv.Atoi(raw)
		if err != nil {
			return response.Fail(c, http.StatusBadRequest, "invalid minBedrooms")
		}
		filter.MinBedrooms = minBedrooms
	}

	properties, err := h.propertyService.Search(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "properties", properties)
}

// ListByOwner godoc
// @Summary List properties of an owner
// @Tags properties
// @Produce json
// @Param ownerId query int true "Owner ID"
// @Success 200 {object} response.Envelope
// @Router /properties [get]
func (h *PropertyHandler) ListByOwner(c echo.Context) error {
	ownerID, err := strconv.Atoi(c.QueryParam("ownerId"))
	if err != nil || ownerID <= 0 {
		return response.Fail(c, http.StatusBadRequest, "ownerId is required")
	}

	properties, err := h.propertyService.ListByOwner(c.Request().Context(), uint(ownerID))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "properties", properties)
}

// Update godoc
// @Summary Update a property listing
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param request body UpdatePropertyRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}

	var req UpdatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	update := service.PropertyUpdate{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqM:     req.AreaSqM,
		Available:   req.Available,
	}
	if req.Type != nil {
		propertyType := model.PropertyType(*req.Type)
		update.Type = &propertyType
	}
	if req.Rent != nil {
		rent, err := decimal.NewFromString(*req.Rent)
		if err != nil || rent.IsNegative() {
			return response.Fail(c, http.StatusBadRequest, "invalid rent")
		}
		update.Rent = &rent
	}

	property, err := h.propertyService.UpdateProperty(c.Request().Context(), uint(id), claims.UserID, callerRole(claims), update)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "property updated", property)
}

// Delete godoc
// @Summary Delete a property listing
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	claims, err := caller(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.propertyService.DeleteProperty(c.Request().Context(), uint(id), claims.UserID, callerRole(claims)); err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, "property deleted", nil)
}

package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrValidation is returned when a required field is missing or empty.
	ErrValidation = errors.New("missing or invalid required field")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrPropertyNotFound is returned when a property does not exist.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrConversationNotFound is returned when a conversation does not exist.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrMessageNotFound is returned when a message does not exist.
	ErrMessageNotFound = errors.New("message not found")
	// ErrAppointmentNotFound is returned when an appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrAnnouncementNotFound is returned when an announcement does not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")
	// ErrOwnerMismatch is returned when the supplied owner does not own the property.
	ErrOwnerMismatch = errors.New("owner does not match property owner")
	// ErrForbidden is returned when the caller lacks rights for the action.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition is returned on an illegal appointment status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidStatus is returned when a status value is not a known state.
	ErrInvalidStatus = errors.New("unknown status value")
)

// ErrorResponse represents a standardized error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPropertyNotFound),
		errors.Is(err, ErrConversationNotFound),
		errors.Is(err, ErrMessageNotFound),
		errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrAnnouncementNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrOwnerMismatch), errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// IsDuplicateKey reports whether err is a storage uniqueness violation.
// MySQL surfaces these as error 1062. Conversation resolution relies on this
// to retry the read after losing a create race instead of failing the request.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1062") || strings.Contains(msg, "Duplicate entry")
}

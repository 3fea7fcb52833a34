package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"roomlink/internal/errors"
)

// Envelope is the uniform JSON body returned by every endpoint.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

func newEnvelope(success bool, message string, data interface{}) Envelope {
	return Envelope{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// OK writes a 200 envelope.
func OK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, newEnvelope(true, message, data))
}

// Created writes a 201 envelope.
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, newEnvelope(true, message, data))
}

// Fail writes an error envelope with the given status.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, newEnvelope(false, message, nil))
}

// Error maps a domain error through the taxonomy and writes the envelope.
func Error(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return Fail(c, httpErr.StatusCode, httpErr.Message)
}

// HTTPErrorHandler folds every error Echo sees (including router-level 404
// and 405) into the envelope so no endpoint leaks a bare payload.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	switch e := err.(type) {
	case *echo.HTTPError:
		status = e.Code
		if m, ok := e.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	case *errors.HTTPError:
		status = e.StatusCode
		message = e.Message
	default:
		httpErr := errors.MapErrorToHTTP(err)
		status = httpErr.StatusCode
		message = httpErr.Message
	}

	if status == http.StatusMethodNotAllowed {
		message = "method not allowed"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = Fail(c, status, message)
}

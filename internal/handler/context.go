package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"roomlink/internal/auth"
	"roomlink/internal/model"
)

// caller extracts the authenticated principal set by the JWT middleware.
// Handlers get a typed user id and role; none of them look at headers.
func caller(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	return claims, nil
}

func callerRole(claims *auth.Claims) model.Role {
	return model.Role(claims.Role)
}

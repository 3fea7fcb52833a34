package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"roomlink/internal/auth"
	"roomlink/internal/config"
	"roomlink/internal/handler"
	"roomlink/internal/response"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	propertyHandler *handler.PropertyHandler,
	messageHandler *handler.MessageHandler,
	appointmentHandler *handler.AppointmentHandler,
	announcementHandler *handler.AnnouncementHandler,
	wsHandler *handler.WSHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/:id", userHandler.GetUser)

	api.GET("/properties", propertyHandler.ListByOwner)
	api.GET("/properties/search", propertyHandler.Search)
	api.GET("/properties/:id", propertyHandler.Get)

	api.GET("/announcements", announcementHandler.List)
	api.GET("/announcements/:id", announcementHandler.Get)

	// websocket upgrade authenticates via query token
	api.GET("/ws", wsHandler.Connect)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.PUT("/users/:id", userHandler.UpdateProfile)
	secured.POST("/users/:id/verify", userHandler.VerifyCIN)

	secured.POST("/properties", propertyHandler.Create)
	secured.PUT("/properties/:id", propertyHandler.Update)
	secured.DELETE("/properties/:id", propertyHandler.Delete)

	secured.GET("/conversations", messageHandler.ListConversations)
	secured.GET("/messages", messageHandler.History)
	secured.POST("/messages/send", messageHandler.Send)
	secured.POST("/messages/markAsRead", messageHandler.MarkAsRead)

	secured.POST("/appointments", appointmentHandler.Create)
	secured.GET("/appointments", appointmentHandler.List)
	secured.PUT("/appointments/status", appointmentHandler.UpdateStatus)
	// some deployed clients still POST status changes
	secured.POST("/appointments/status", appointmentHandler.UpdateStatus)

	secured.POST("/announcements", announcementHandler.Create)
	secured.DELETE("/announcements/:id", announcementHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

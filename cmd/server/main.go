package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"roomlink/docs"
	"roomlink/internal/auth"
	"roomlink/internal/cache"
	"roomlink/internal/config"
	"roomlink/internal/db"
	"roomlink/internal/handler"
	"roomlink/internal/model"
	"roomlink/internal/repository"
	"roomlink/internal/router"
	"roomlink/internal/service"
	"roomlink/internal/ws"
)

// @title Roomlink API
// @version 1.0
// @description Roommate and rental listing platform: users, properties, messaging, appointments and announcements.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Message{},
			&model.Conversation{},
			&model.Appointment{},
			&model.Announcement{},
			&model.Property{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Property{},
		&model.Conversation{},
		&model.Message{},
		&model.Appointment{},
		&model.Announcement{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB, cfg.DBTimeout)
	propertyRepo := repository.NewPropertyRepository(gormDB, cfg.DBTimeout)
	conversationRepo := repository.NewConversationRepository(gormDB, cfg.DBTimeout)
	messageRepo := repository.NewMessageRepository(gormDB, cfg.DBTimeout)
	appointmentRepo := repository.NewAppointmentRepository(gormDB, cfg.DBTimeout)
	announcementRepo := repository.NewAnnouncementRepository(gormDB, cfg.DBTimeout)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Live-event hub
	hub := ws.NewHub()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	propertyService := service.NewPropertyService(propertyRepo, userRepo, cacheClient)
	messagingService := service.NewMessagingService(userRepo, conversationRepo, messageRepo, hub)
	appointmentService := service.NewAppointmentService(appointmentRepo, propertyRepo, userRepo)
	announcementService := service.NewAnnouncementService(announcementRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	messageHandler := handler.NewMessageHandler(messagingService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	wsHandler := handler.NewWSHandler(hub, jwtService, cfg.CORSOrigins)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		propertyHandler,
		messageHandler,
		appointmentHandler,
		announcementHandler,
		wsHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

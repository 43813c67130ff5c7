// Package app wires the Ciclexpress site together: configuration,
// database, services, handlers and the HTTP server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Heshmert/P2-31499269/internal/config"
	"github.com/Heshmert/P2-31499269/internal/email"
	"github.com/Heshmert/P2-31499269/internal/gateway"
	"github.com/Heshmert/P2-31499269/internal/handlers"
	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/middleware"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/repositories"
	"github.com/Heshmert/P2-31499269/internal/routes"
	"github.com/Heshmert/P2-31499269/internal/services"
	"github.com/Heshmert/P2-31499269/internal/validator"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sessionCookieName = "ciclexpress_session"

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	logger.Info("Database ready", "path", cfg.Database.Path)

	authService := services.NewAuthService(repositories.NewUserRepository(gormDB))
	if err := authService.SeedAdmin(cfg.Admin); err != nil {
		logger.Fatal("Failed to seed admin user", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    address,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server stopped")
}

func openDatabase(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(
		&models.Contact{},
		&models.Message{},
		&models.Payment{},
		&models.User{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return gormDB, nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	contactRepo := repositories.NewContactRepository(gormDB)
	messageRepo := repositories.NewMessageRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)

	// External clients
	captcha := gateway.NewRecaptchaVerifier(cfg.Recaptcha.SecretKey)
	geo := gateway.NewGeoIPClient()
	paymentGateway := gateway.NewPaymentClient(cfg.Payment.BaseURL, cfg.Payment.APIKey)
	smtpSender := email.NewSMTPSender(email.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUser,
		Password: cfg.Email.SMTPPassword,
		FromName: cfg.Email.FromName,
	})

	// Services
	mailer := services.NewMailerService(smtpSender, cfg.Email.NotifyEmail)
	contactService := services.NewContactService(contactRepo, messageRepo, captcha, geo, mailer)
	paymentService := services.NewPaymentService(paymentRepo, paymentGateway, mailer)
	replyService := services.NewReplyService(messageRepo, mailer)
	authService := services.NewAuthService(userRepo)

	// Handlers
	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &routes.AppHandlers{
		Pages:   handlers.NewPagesHandler(base),
		Contact: handlers.NewContactHandler(base, contactService, cfg.Recaptcha.SiteKey),
		Payment: handlers.NewPaymentHandler(base, paymentService),
		Auth:    handlers.NewAuthHandler(base, authService, cfg),
		Admin:   handlers.NewAdminHandler(base, contactService, paymentService, replyService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
	})
	router.Use(sessions.Sessions(sessionCookieName, store))
	router.Use(middleware.CurrentUser(authService))

	router.LoadHTMLGlob(cfg.Web.TemplatesGlob)
	router.Static("/static", cfg.Web.StaticDir)

	routes.RegisterRoutes(router, appHandlers)
	return router
}

package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"weighttrack/internal/cache"
	"weighttrack/internal/config"
	"weighttrack/internal/db"
	"weighttrack/internal/handler"
	"weighttrack/internal/mail"
	"weighttrack/internal/model"
	"weighttrack/internal/repository"
	"weighttrack/internal/router"
	"weighttrack/internal/service"
	"weighttrack/internal/session"
)

func main() {
	cfg := config.Load()
	log := logrus.New()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.WeightSample{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	renderer, err := router.NewRenderer("web/templates/*.html")
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	e.Renderer = renderer

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	weightRepo := repository.NewWeightRepository(gormDB)

	// Initialize sessions and mail
	sessionStore := session.NewStore(cacheClient)
	sessions := session.NewManager(cfg.SessionSecret, sessionStore)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, log)

	// Initialize services
	authService := service.NewAuthService(userRepo, mailer, log)
	weightService := service.NewWeightService(userRepo, weightRepo)
	chartService := service.NewChartService(weightRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	weightHandler := handler.NewWeightHandler(weightService)
	metricsHandler := handler.NewMetricsHandler(weightService)
	chartHandler := handler.NewChartHandler(chartService)
	pagesHandler := handler.NewPagesHandler()

	// Register routes
	router.Register(
		e,
		sessions,
		userRepo,
		authHandler,
		weightHandler,
		metricsHandler,
		chartHandler,
		pagesHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

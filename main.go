package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/experience-booking/config"
	"github.com/Eursukkul/experience-booking/internal/consumer"
	"github.com/Eursukkul/experience-booking/internal/handler"
	"github.com/Eursukkul/experience-booking/internal/middleware"
	"github.com/Eursukkul/experience-booking/internal/pricing"
	"github.com/Eursukkul/experience-booking/internal/repository"
	"github.com/Eursukkul/experience-booking/internal/service"
	"github.com/Eursukkul/experience-booking/pkg/database"
	"github.com/Eursukkul/experience-booking/pkg/logger"
	"github.com/Eursukkul/experience-booking/pkg/rabbitmq"
	"github.com/Eursukkul/experience-booking/pkg/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.NewPostgresDB(cfg.DSN())

	if cfg.SeedDatabase {
		seeded, err := database.Seed(ctx, db, time.Now())
		if err != nil {
			zlog.Fatal("failed to seed database", zap.Error(err))
		}
		zlog.Info("seed finished", zap.Bool("inserted", seeded))
	}

	// Repositories
	experienceRepo := repository.NewExperienceRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		// Publisher: booking.confirmed events
		mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqPublisher.Close()
		publisher = mqPublisher

		// Consumer: catalog changes
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			zlog.Fatal("failed to start consuming", zap.Error(err))
		}
		consumer.NewCatalogConsumer(experienceRepo, promoRepo, slotRepo, zlog).Start(msgs)
	} else {
		zlog.Info("RABBITMQ_URL not set, messaging disabled")
	}

	// Services
	validator := validation.New()
	calc := pricing.Calculator{ClampDiscount: cfg.ClampDiscount}
	promoSvc := service.NewPromoService(promoRepo, experienceRepo, calc, zlog)
	catalogSvc := service.NewCatalogService(experienceRepo, slotRepo, cfg.SlotWindowDays)
	bookingSvc := service.NewBookingService(service.BookingDeps{
		Bookings:    bookingRepo,
		Slots:       slotRepo,
		Experiences: experienceRepo,
		Promos:      promoSvc,
		Calculator:  calc,
		Validator:   validator,
		Publisher:   publisher,
		Logger:      zlog,
	})

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(zlog))
	e.Use(echoMw.Recover())
	e.Use(echoMw.ContextTimeoutWithConfig(echoMw.ContextTimeoutConfig{Timeout: cfg.RequestTimeout}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "experience-booking"})
	})

	api := e.Group("/api")
	handler.NewExperienceHandler(catalogSvc).RegisterRoutes(api)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewPromoHandler(promoSvc).RegisterRoutes(api)

	go func() {
		zlog.Info("experience booking service starting", zap.String("port", cfg.ServerPort))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
}

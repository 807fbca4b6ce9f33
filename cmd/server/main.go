package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"evcharge-service/internal/infrastructure/cache"
	"evcharge-service/internal/infrastructure/config"
	"evcharge-service/internal/infrastructure/persistence"
	"evcharge-service/internal/infrastructure/queue"
	"evcharge-service/internal/interface/handler"
	mongoRepo "evcharge-service/internal/interface/repository"
	"evcharge-service/internal/usecase"
	"evcharge-service/pkg/logger"
	"evcharge-service/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting EV Charge Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Station working hours are evaluated against this wall clock
	location, err := time.LoadLocation(cfg.StationTimezone)
	if err != nil {
		log.Fatal("Failed to load station timezone", "timezone", cfg.StationTimezone, "error", err)
	}

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up Redis connection
	log.Info("Connecting to Redis")
	redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}

	// Set up RabbitMQ publisher
	log.Info("Connecting to RabbitMQ")
	publisher, err := queue.NewAmqpPublisher(cfg.AmqpURL, log)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ", "error", err)
	}
	defer publisher.Close()

	// Set up repositories
	accountRepo := mongoRepo.NewMongoAccountRepository(db)
	stationRepo := mongoRepo.NewMongoStationRepository(db)
	operatorRepo := mongoRepo.NewMongoOperatorRepository(db)
	reservationRepo := mongoRepo.NewMongoReservationRepository(db)
	bookingRepo := mongoRepo.NewMongoBookingRepository(db)
	sessionStore := cache.NewRedisActiveSessionStore(redisClient, cfg.ActiveSessionTTL)

	// Set up usecases
	clock := usecase.NewSystemClock()
	matcher := usecase.NewOperatorMatcher(operatorRepo, bookingRepo, location, log)
	scanService := usecase.NewScanService(bookingRepo, reservationRepo, accountRepo, stationRepo, operatorRepo, sessionStore, publisher, clock, log)
	reservationUsecase := usecase.NewReservationUsecase(accountRepo, stationRepo, operatorRepo, reservationRepo, bookingRepo, matcher, scanService, publisher, clock, log)
	slotService := usecase.NewSlotService(stationRepo, bookingRepo, location, clock, log)
	operatorUsecase := usecase.NewOperatorUsecase(operatorRepo, accountRepo, stationRepo, log)

	appMetrics := metrics.NewMetrics("evcharge")

	// Set up HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)
			appMetrics.RequestDuration.Observe(elapsed.Seconds())
			log.Debug("request served",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"durationMs", elapsed.Milliseconds())
			return err
		}
	})

	handler.RegisterRoutes(e, handler.Handlers{
		Auth:         handler.NewAuthHandler(accountRepo, cfg.JWTSecret, cfg.AccessTokenTTL, log),
		Reservations: handler.NewReservationHandler(reservationUsecase, appMetrics, log),
		Availability: handler.NewAvailabilityHandler(matcher, slotService, log),
		Scans:        handler.NewScanHandler(scanService, appMetrics, log),
		Operators:    handler.NewOperatorHandler(operatorUsecase, log),
	}, cfg.JWTSecret)

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server listening", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for termination signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("Received signal, shutting down", "signal", sig.String())

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect failed", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Redis close failed", "error", err)
	}

	log.Info("Shutdown complete")
}

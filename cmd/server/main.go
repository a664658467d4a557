package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	_ "londonhealth/docs" // swagger docs

	"londonhealth/internal/config"
	"londonhealth/internal/db"
	"londonhealth/internal/handler"
	"londonhealth/internal/model"
	"londonhealth/internal/repository"
	"londonhealth/internal/router"
	"londonhealth/internal/service"
	"londonhealth/internal/session"
)

const shutdownTimeout = 10 * time.Second

// @title London Health Records API
// @version 1.0
// @description Healthcare records administration API with session-based authentication and role-based access control.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	mongoClient, err := db.NewMongo(ctx, cfg.MongoURL)
	if err != nil {
		log.Fatalf("mongo init: %v", err)
	}
	patientCollection := mongoClient.Database(cfg.MongoDatabase).Collection(cfg.PatientCollection)

	sessionStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := session.NewManager(sessionStore, cfg.SessionTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	patientRepo := repository.NewPatientRepository(patientCollection)
	if err := patientRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("patient indexes: %v", err)
	}

	// Initialize services
	userService := service.NewUserService(userRepo)
	patientService := service.NewPatientService(patientRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, sessions)
	userHandler := handler.NewUserHandler(userService)
	patientHandler := handler.NewPatientHandler(patientService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, logger, sessions, authHandler, userHandler, patientHandler)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()
	logger.Info().Str("port", cfg.ServerPort).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect")
	}
	if err := sessionStore.Close(); err != nil {
		logger.Error().Err(err).Msg("session store close")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error().Err(err).Msg("mysql close")
		}
	}
	logger.Info().Msg("shutdown complete")
}

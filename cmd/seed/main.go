package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"londonhealth/internal/config"
	"londonhealth/internal/db"
	"londonhealth/internal/model"
	"londonhealth/internal/repository"
	"londonhealth/internal/seed"
	"londonhealth/internal/service"

	apperrors "londonhealth/internal/errors"
)

// Seeds the clinical store with the stroke dataset and bootstraps the first
// admin user. Both steps are idempotent and failure-tolerant: this command
// is safe to run on every deploy.
func main() {
	cfg := config.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := context.Background()

	logger.Info().Msg("starting seed")

	mongoClient, err := db.NewMongo(ctx, cfg.MongoURL)
	if err != nil {
		logger.Warn().Err(err).Msg("mongo unreachable, skipping patient seeding")
	} else {
		seed.Patients(ctx, mongoClient.Database(cfg.MongoDatabase), cfg.PatientCollection, cfg.SeedCSVPath, logger)
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Warn().Err(err).Msg("mongo disconnect")
		}
	}

	bootstrapAdmin(ctx, cfg, logger)

	logger.Info().Msg("seed finished")
}

// bootstrapAdmin registers the initial admin account. Registration is an
// admin-only API action, so the first admin has to come from the outside.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, logger zerolog.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Info().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Warn().Err(err).Msg("mysql unreachable, skipping admin bootstrap")
		return
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		logger.Warn().Err(err).Msg("auto-migrate failed, skipping admin bootstrap")
		return
	}

	users := service.NewUserService(repository.NewUserRepository(gormDB))
	user, err := users.Register(ctx, service.RegisterInput{
		FirstName: "System",
		LastName:  "Admin",
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		Role:      model.RoleAdmin,
	})
	switch {
	case err == nil:
		logger.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("admin user created")
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		logger.Info().Str("email", cfg.AdminEmail).Msg("admin user already exists")
	default:
		logger.Warn().Err(err).Msg("admin bootstrap failed")
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

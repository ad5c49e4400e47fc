package main

import (
	"blood_bank_backend/internal/app"
	"blood_bank_backend/internal/bloodrequest"
	"blood_bank_backend/internal/config"
	"blood_bank_backend/internal/contact"
	"blood_bank_backend/internal/dashboard"
	"blood_bank_backend/internal/jobs"
	"blood_bank_backend/internal/platform/crypto"
	"blood_bank_backend/internal/platform/database"
	"blood_bank_backend/internal/platform/metrics"
	"blood_bank_backend/internal/user"
	"blood_bank_backend/internal/volunteer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideDatabase connects and migrates. The cleanup closes the pool.
func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(db, app.Models()...); err != nil {
		database.CloseGORMDB(db)
		return nil, nil, err
	}
	logger.Info("Database ready", zap.String("driver", cfg.DBDriver))
	cleanup := func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
	}
	return db, cleanup, nil
}

func provideHasher(cfg *config.Config) *crypto.PasswordHasher {
	return crypto.NewPasswordHasher(cfg.BcryptCost)
}

func provideDashboard(
	users *user.ServiceImplementation,
	requests bloodrequest.Service,
	volunteers volunteer.Service,
	contacts contact.Service,
	cfg *config.Config,
) *dashboard.Service {
	return dashboard.NewService(users, requests, volunteers, contacts, cfg)
}

func provideDigestJob(
	requests bloodrequest.Service,
	registry *metrics.Registry,
	logger *zap.Logger,
	cfg *config.Config,
) *jobs.RequestDigestJob {
	return jobs.NewRequestDigestJob(requests, registry, logger, cfg)
}

//go:build wireinject
// +build wireinject

package main

import (
	"blood_bank_backend/internal/app"
	"blood_bank_backend/internal/auth"
	"blood_bank_backend/internal/bloodrequest"
	"blood_bank_backend/internal/config"
	"blood_bank_backend/internal/contact"
	"blood_bank_backend/internal/dashboard"
	"blood_bank_backend/internal/platform/metrics"
	"blood_bank_backend/internal/shared"
	"blood_bank_backend/internal/user"
	"blood_bank_backend/internal/volunteer"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var platformSet = wire.NewSet(
	provideDatabase,
)

var userSet = wire.NewSet(
	auth.NewJWTService,
	provideHasher,
	user.NewGORMRepository,
	user.NewService,
	wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
	wire.Bind(new(shared.RoleLookup), new(*user.ServiceImplementation)),
	wire.Bind(new(auth.AccountService), new(*user.ServiceImplementation)),
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config, logger *zap.Logger) (*app.Server, func(), error) {
	wire.Build(
		platformSet,
		userSet,

		bloodrequest.NewGORMRepository,
		bloodrequest.NewService,
		volunteer.NewGORMRepository,
		volunteer.NewService,
		contact.NewGORMRepository,
		contact.NewService,
		provideDashboard,
		metrics.NewRegistry,
		provideDigestJob,

		auth.NewHandler,
		user.NewHandler,
		bloodrequest.NewHandler,
		volunteer.NewHandler,
		contact.NewHandler,
		dashboard.NewHandler,
		wire.Struct(new(app.Handlers), "*"),

		app.NewServer,
	)
	return nil, nil, nil
}

// initializeUserService builds the user service for the admin commands.
func initializeUserService(cfg *config.Config, logger *zap.Logger) (*user.ServiceImplementation, func(), error) {
	wire.Build(platformSet, userSet)
	return nil, nil, nil
}

// initializeDatabase opens and migrates the database.
func initializeDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	wire.Build(platformSet)
	return nil, nil, nil
}

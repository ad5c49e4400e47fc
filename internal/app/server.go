// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blood_bank_backend/internal/auth"
	"blood_bank_backend/internal/bloodrequest"
	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/config"
	"blood_bank_backend/internal/contact"
	"blood_bank_backend/internal/dashboard"
	"blood_bank_backend/internal/jobs"
	"blood_bank_backend/internal/middleware"
	"blood_bank_backend/internal/platform/metrics"
	"blood_bank_backend/internal/shared"
	"blood_bank_backend/internal/user"
	"blood_bank_backend/internal/volunteer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the feature handlers mounted by the server.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	BloodRequest *bloodrequest.Handler
	Volunteer    *volunteer.Handler
	Contact      *contact.Handler
	Dashboard    *dashboard.Handler
}

// Models lists every table the API owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&bloodrequest.BloodRequest{},
		&volunteer.Volunteer{},
		&contact.Message{},
	}
}

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	digestJob *jobs.RequestDigestJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	tokenService shared.TokenService,
	roles shared.RoleLookup,
	registry *metrics.Registry,
	digestJob *jobs.RequestDigestJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	common.RegisterValidators()

	if cfg.GinMode == gin.ReleaseMode && cfg.UsesDefaultJWTSecret() {
		logger.Warn("JWT_SECRET is not set; tokens are signed with the built-in development secret")
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.Recovery(logger))
	router.Use(registry.Middleware())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.ErrorHandler(logger))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminMW := middleware.AdminMiddleware(roles, logger.Named("AdminMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Blood bank API is healthy!"})
	})
	router.GET("/metrics", gin.WrapH(registry.Handler()))

	api := router.Group("/api")
	handlers.Auth.RegisterRoutes(api)
	handlers.User.RegisterRoutes(api, authMW)
	handlers.BloodRequest.RegisterRoutes(api, authMW, optionalAuthMW)
	handlers.Volunteer.RegisterRoutes(api)
	handlers.Contact.RegisterRoutes(api)
	handlers.Dashboard.RegisterRoutes(api)

	admin := api.Group("/admin", authMW, adminMW)
	handlers.Dashboard.RegisterAdminRoutes(admin)
	handlers.User.RegisterAdminRoutes(admin)
	handlers.BloodRequest.RegisterAdminRoutes(admin)
	handlers.Volunteer.RegisterAdminRoutes(admin)
	handlers.Contact.RegisterAdminRoutes(admin)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		digestJob:  digestJob,
	}, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowCredentials = true
	return corsCfg
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if s.digestJob != nil {
		if err := s.digestJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start request digest job", zap.Error(err))
		}
	} else {
		s.logger.Info("Request digest job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.digestJob != nil {
		s.digestJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}

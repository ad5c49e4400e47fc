package main

import (
	"context"
	"errors"
	"fmt"
	"log" // Standard log for failures before zap is active
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"blood_bank_backend/internal/config"
	"blood_bank_backend/internal/platform/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bloodbank",
		Short:         "Blood donation and request API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnv(serve)
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithEnv(serve)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database tables and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithEnv(migrate)
			},
		},
		newCreateAdminCmd(),
		newMakeAdminCmd(),
	)
	return root
}

// runWithEnv loads configuration and the logger, then hands them to fn.
func runWithEnv(fn func(cfg *config.Config, appLogger *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("FATAL: Failed to load configuration: %v", err)
		return err
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Printf("FATAL: Failed to initialize logger: %v", err)
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	if err := fn(cfg, appLogger); err != nil {
		appLogger.Error("Command failed", zap.Error(err))
		return err
	}
	return nil
}

func serve(cfg *config.Config, appLogger *zap.Logger) error {
	server, cleanup, err := initializeServer(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-quit:
		appLogger.Info("Received signal, shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	appLogger.Info("Server exited gracefully")
	return nil
}

func migrate(cfg *config.Config, appLogger *zap.Logger) error {
	_, cleanup, err := initializeDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()
	appLogger.Info("Migrations applied")
	return nil
}

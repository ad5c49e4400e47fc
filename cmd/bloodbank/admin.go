package main

import (
	"context"
	"fmt"
	"strings"

	"blood_bank_backend/internal/config"
	"blood_bank_backend/internal/platform/crypto"
	"blood_bank_backend/internal/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateAdminCmd() *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the admin account, or promote it if the email is already registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnv(func(cfg *config.Config, appLogger *zap.Logger) error {
				account, generated, err := adminAccount(cfg, email, name, password)
				if err != nil {
					return err
				}
				users, cleanup, err := initializeUserService(cfg, appLogger)
				if err != nil {
					return err
				}
				defer cleanup()

				admin, created, err := users.EnsureAdmin(context.Background(), account)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !created {
					fmt.Fprintf(out, "User %s already exists and now has the admin role.\n", admin.Email)
					return nil
				}
				fmt.Fprintf(out, "Admin account created.\n  Email:    %s\n", admin.Email)
				if generated {
					fmt.Fprintf(out, "  Password: %s\nChange this password after the first login.\n", account.Password)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (default ADMIN_EMAIL)")
	cmd.Flags().StringVar(&name, "name", "", "admin display name (default ADMIN_NAME)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD, generated when empty)")
	return cmd
}

// adminAccount resolves flags over config. The bool reports a generated password.
func adminAccount(cfg *config.Config, email, name, password string) (user.AdminAccount, bool, error) {
	account := user.AdminAccount{
		Email:    firstNonEmpty(email, cfg.AdminEmail),
		Name:     firstNonEmpty(name, cfg.AdminName),
		Password: firstNonEmpty(password, cfg.AdminPassword),
	}
	if account.Password != "" {
		return account, false, nil
	}
	generated, err := crypto.GenerateSecureRandomString(12)
	if err != nil {
		return account, false, fmt.Errorf("failed to generate admin password: %w", err)
	}
	account.Password = generated
	return account, true, nil
}

func newMakeAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "make-admin <email>",
		Short: "Grant the admin role to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithEnv(func(cfg *config.Config, appLogger *zap.Logger) error {
				users, cleanup, err := initializeUserService(cfg, appLogger)
				if err != nil {
					return err
				}
				defer cleanup()

				admin, err := users.PromoteToAdmin(context.Background(), user.NormalizeEmail(args[0]))
				if err != nil {
					return fmt.Errorf("could not promote %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User %s is now an admin.\n", admin.Email)
				return nil
			})
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

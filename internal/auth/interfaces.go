// File: internal/auth/interfaces.go
package auth

import (
	"context"

	"blood_bank_backend/internal/user"
)

// AccountService is the slice of the user service the auth handler needs.
// It is implemented by user.ServiceImplementation.
type AccountService interface {
	Register(ctx context.Context, req user.RegisterRequest) (*user.User, string, error)
	Login(ctx context.Context, req user.LoginRequest) (*user.User, string, error)
}

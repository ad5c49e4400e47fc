package shared

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims structure. The custom fields mirror the
// token payload the frontend decodes: {id, email, name}.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenSubject abstracts the user data embedded in a token.
type TokenSubject interface {
	GetID() uint
	GetEmail() string
	GetName() string
}

// TokenService defines the interface for JWT operations.
type TokenService interface {
	GenerateToken(subject TokenSubject) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// RoleLookup resolves the current role of a user. Roles are not carried in the
// token, so the admin gate asks the store on every request.
type RoleLookup interface {
	GetRoleByID(ctx context.Context, id uint) (string, error)
}

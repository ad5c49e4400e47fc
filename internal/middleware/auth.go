// File: internal/middleware/auth.go
package middleware

import (
	"errors"

	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/domain"
	"blood_bank_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
// A missing credential is a 401; a present but invalid or expired one is a 403.
func AuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrInvalidToken)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid token is
// present and otherwise lets the request through anonymously.
func OptionalAuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := common.GetTokenFromContext(c); tokenString != "" {
			if claims, err := tokenService.ValidateToken(tokenString); err == nil {
				setIdentity(c, claims)
			} else {
				logger.Debug("Ignoring invalid token on soft-auth route", zap.Error(err))
			}
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *shared.Claims) {
	c.Set(common.UserIDKey, claims.UserID)
	c.Set(common.UserEmailKey, claims.Email)
	c.Set(common.UserNameKey, claims.Name)
	c.Set(common.UserClaimsKey, claims)
}

// GetUserClaimsFromContext retrieves the full claims object from the Gin context.
func GetUserClaimsFromContext(c *gin.Context) *shared.Claims {
	val, exists := c.Get(common.UserClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*shared.Claims)
	if !ok {
		return nil
	}
	return claims
}

// AdminMiddleware must run after AuthMiddleware. It reads the caller's role from
// the store so that demotions take effect without waiting for token expiry.
func AdminMiddleware(roles shared.RoleLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := common.GetUserIDFromContext(c)
		if !ok {
			common.RespondWithError(c, common.ErrUnauthorized)
			return
		}

		role, err := roles.GetRoleByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.RespondWithError(c, common.ErrUnauthorized.WithMessage("User not found"))
				return
			}
			common.RespondWithError(c, err, "Failed to verify admin access")
			return
		}
		if role != domain.RoleAdmin {
			logger.Info("Non-admin denied admin route", zap.Uint("userID", userID), zap.String("path", c.FullPath()))
			common.RespondWithError(c, common.ErrForbidden.WithMessage("Admin access required"))
			return
		}

		c.Set(common.UserRoleKey, role)
		c.Next()
	}
}

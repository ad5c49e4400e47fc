// File: internal/auth/handler.go
package auth

import (
	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves account registration and login.
type Handler struct {
	accounts AccountService
	logger   *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(accounts AccountService, logger *zap.Logger) *Handler {
	return &Handler{accounts: accounts, logger: logger}
}

// RegisterRoutes sets up the routes for authentication operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Register: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err, user.MsgRegisterFieldsRequired))
		return
	}

	created, token, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err, "Registration failed. Please try again.")
		return
	}

	common.RespondCreated(c, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    user.ToUserResponse(created),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Login: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err, user.MsgLoginFieldsRequired))
		return
	}

	loggedIn, token, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err, "Login failed. Please try again.")
		return
	}

	common.RespondOK(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user.ToUserResponse(loggedIn),
	})
}

// File: internal/user/handler.go
package user

import (
	"blood_bank_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the profile and donor search routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/donors/search", h.searchDonors)

	me := router.Group("/me")
	me.Use(authMW)
	{
		me.GET("", h.getMe)
		me.PUT("", h.updateMe)
	}
}

// RegisterAdminRoutes mounts user management on an already guarded admin group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", h.listUsers)
		users.PATCH("/:id/role", h.changeRole)
		users.DELETE("/:id", h.deleteUser)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	usr, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch user")
		return
	}
	common.RespondOK(c, gin.H{"user": ToUserResponse(usr)})
}

func (h *Handler) updateMe(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err, "Invalid profile update"))
		return
	}
	usr, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err, "Failed to update profile")
		return
	}
	common.RespondOK(c, gin.H{"message": "Profile updated successfully", "user": ToUserResponse(usr)})
}

func (h *Handler) searchDonors(c *gin.Context) {
	donors, err := h.service.SearchDonors(c.Request.Context(), c.Query("bloodGroup"), c.Query("province"))
	if err != nil {
		common.RespondWithError(c, err, "Failed to search donors")
		return
	}
	common.RespondOK(c, gin.H{"donors": ToDonorResponses(donors)})
}

func (h *Handler) listUsers(c *gin.Context) {
	pq := common.GetPageQuery(c)
	users, pagination, err := h.service.ListUsers(c.Request.Context(), c.Query("search"), pq)
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch users")
		return
	}
	common.RespondPaginated(c, "users", ToUserResponses(users), pagination)
}

func (h *Handler) changeRole(c *gin.Context) {
	targetID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	actorID, _ := common.GetUserIDFromContext(c)

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err, MsgInvalidRole))
		return
	}
	usr, err := h.service.ChangeRole(c.Request.Context(), actorID, targetID, req.Role)
	if err != nil {
		common.RespondWithError(c, err, "Failed to update user role")
		return
	}
	common.RespondOK(c, gin.H{"message": "User role updated", "user": ToUserResponse(usr)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	targetID, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	actorID, _ := common.GetUserIDFromContext(c)

	if err := h.service.DeleteUser(c.Request.Context(), actorID, targetID); err != nil {
		common.RespondWithError(c, err, "Failed to delete user")
		return
	}
	common.RespondOK(c, gin.H{"message": "User deleted"})
}

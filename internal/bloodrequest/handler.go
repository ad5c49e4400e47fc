// File: internal/bloodrequest/handler.go
package bloodrequest

import (
	"errors"

	"blood_bank_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for blood request handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new blood request handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the public and signed-in blood request routes.
// optionalAuthMW only attaches an identity for POST; authMW is required for PATCH.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	requests := router.Group("/blood-requests")
	{
		requests.POST("", optionalAuthMW, h.create)
		requests.GET("", h.list)
		requests.GET("/:id", h.get)
		requests.PATCH("/:id", authMW, h.updateStatus)
	}
	router.GET("/me/blood-requests", authMW, h.listMine)
}

// RegisterAdminRoutes mounts request management on an already guarded admin group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	requests := admin.Group("/blood-requests")
	{
		requests.GET("", h.adminList)
		requests.PATCH("/:id", h.updateStatus)
		requests.DELETE("/:id", h.delete)
	}
}

func filterFromQuery(c *gin.Context) Filter {
	return Filter{
		BloodGroup: c.Query("bloodGroup"),
		Province:   c.Query("province"),
		Status:     c.Query("status"),
		Urgency:    c.Query("urgency"),
	}
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Create blood request: invalid body", zap.Error(err))
		if errors.Is(err, common.ErrInvalidInteger) {
			common.RespondWithError(c, common.ErrValidation.WithMessage(MsgInvalidUnits))
			return
		}
		common.RespondWithError(c, common.BindingError(err, MsgRequiredFields))
		return
	}

	var userID *uint
	if id, ok := common.GetUserIDFromContext(c); ok {
		userID = &id
	}

	created, err := h.service.Create(c.Request.Context(), req, userID)
	if err != nil {
		common.RespondWithError(c, err, "Failed to submit blood request")
		return
	}
	common.RespondCreated(c, gin.H{"message": "Blood request submitted successfully", "request": created})
}

func (h *Handler) list(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch blood requests")
		return
	}
	common.RespondOK(c, gin.H{"requests": requests})
}

func (h *Handler) get(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	request, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch blood request")
		return
	}
	common.RespondOK(c, gin.H{"request": request})
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err, MsgStatusRequired))
		return
	}
	updated, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		common.RespondWithError(c, err, "Failed to update blood request")
		return
	}
	common.RespondOK(c, gin.H{"message": "Status updated", "request": updated})
}

func (h *Handler) listMine(c *gin.Context) {
	userID, ok := common.GetUserIDFromContext(c)
	if !ok {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	requests, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch requests")
		return
	}
	common.RespondOK(c, gin.H{"requests": requests})
}

func (h *Handler) adminList(c *gin.Context) {
	requests, pagination, err := h.service.AdminList(c.Request.Context(), filterFromQuery(c), common.GetPageQuery(c))
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch blood requests")
		return
	}
	common.RespondPaginated(c, "requests", requests, pagination)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := common.ParseIDParam(c, "id")
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err, "Failed to delete blood request")
		return
	}
	common.RespondOK(c, gin.H{"message": "Blood request deleted"})
}

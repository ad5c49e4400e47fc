package dashboard

import (
	"blood_bank_backend/internal/common"
	"blood_bank_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the public and admin statistics endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", h.public)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.overview)
}

// public never fails: on a store error it reports zero counts.
func (h *Handler) public(c *gin.Context) {
	stats, err := h.service.Public(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute public stats", zap.Error(err))
	}
	common.RespondOK(c, gin.H{
		"donors":     stats.Donors,
		"drives":     stats.Drives,
		"regions":    stats.Regions,
		"volunteers": stats.Volunteers,
	})
}

func (h *Handler) overview(c *gin.Context) {
	o, err := h.service.Overview(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch dashboard stats")
		return
	}
	common.RespondOK(c, gin.H{
		"stats":          o.Stats,
		"recentUsers":    user.ToUserResponses(o.RecentUsers),
		"recentRequests": o.RecentRequests,
	})
}

package volunteer

import (
	"blood_bank_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the volunteer form and its admin listing.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new volunteer handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/volunteer", h.signUp)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/volunteers", h.list)
}

func (h *Handler) signUp(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err, MsgRequiredFields))
		return
	}
	if _, err := h.service.SignUp(c.Request.Context(), req); err != nil {
		common.RespondWithError(c, err, "Failed to register volunteer")
		return
	}
	common.RespondOK(c, gin.H{"message": "Thank you for volunteering!"})
}

func (h *Handler) list(c *gin.Context) {
	volunteers, pagination, err := h.service.List(c.Request.Context(), common.GetPageQuery(c))
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch volunteers")
		return
	}
	common.RespondPaginated(c, "volunteers", volunteers, pagination)
}

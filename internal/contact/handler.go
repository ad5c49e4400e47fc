package contact

import (
	"blood_bank_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", h.submit)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/contacts", h.list)
}

func (h *Handler) submit(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.BindingError(err, MsgRequiredFields))
		return
	}
	if _, err := h.service.Submit(c.Request.Context(), req); err != nil {
		common.RespondWithError(c, err, "Failed to send message")
		return
	}
	common.RespondOK(c, gin.H{"message": "Message received. We will reply soon."})
}

func (h *Handler) list(c *gin.Context) {
	messages, pagination, err := h.service.List(c.Request.Context(), common.GetPageQuery(c))
	if err != nil {
		common.RespondWithError(c, err, "Failed to fetch contacts")
		return
	}
	common.RespondPaginated(c, "contacts", messages, pagination)
}

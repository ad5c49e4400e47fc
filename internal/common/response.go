// File: internal/common/response.go
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerContextKey is where middleware stores the request-scoped logger.
const LoggerContextKey = "logger"

// errorBody is the wire shape of every error response.
type errorBody struct {
	OK bool `json:"ok"`
	*APIError
}

// RespondWithError sends a JSON error response. Errors that are not an *APIError
// are logged and reported as a 500 carrying fallbackMessage (or the generic one).
func RespondWithError(c *gin.Context, err error, fallbackMessage ...string) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get(LoggerContextKey); exists {
			if logger, ok := l.(*zap.Logger); ok {
				logger.Error("Unhandled internal error", zap.Error(err), zap.String("path", c.FullPath()))
			}
		}
		apiErr = ErrInternalServer
		if len(fallbackMessage) > 0 && fallbackMessage[0] != "" {
			apiErr = apiErr.WithMessage(fallbackMessage[0])
		}
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, errorBody{OK: false, APIError: apiErr})
}

// Respond sends {"ok": true} merged with payload.
func Respond(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// RespondOK sends a 200 OK response.
func RespondOK(c *gin.Context, payload gin.H) {
	Respond(c, http.StatusOK, payload)
}

// RespondCreated sends a 201 Created response.
func RespondCreated(c *gin.Context, payload gin.H) {
	Respond(c, http.StatusCreated, payload)
}

// RespondPaginated sends a list under key along with its pagination block.
func RespondPaginated(c *gin.Context, key string, items interface{}, p *Pagination) {
	RespondOK(c, gin.H{
		key:          items,
		"total":      p.TotalItems,
		"page":       p.CurrentPage,
		"limit":      p.PageSize,
		"totalPages": p.TotalPages,
	})
}

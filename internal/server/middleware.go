package server

import (
	"time"

	"github.com/gin-gonic/gin"

	model "auction-platform/internal/models"
	"auction-platform/services/auction/helpers"
	"auction-platform/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// IdentityMiddleware attaches the authenticated identity supplied by the
// external auth layer. Identity arrives as opaque headers; websocket
// clients cannot set headers from a browser, so query parameters are
// accepted as a fallback. Requests without identity proceed and fail at
// the handlers that require one.
func IdentityMiddleware(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		userID = c.Query("user_id")
	}
	role := c.GetHeader("X-User-Role")
	if role == "" {
		role = c.Query("user_role")
	}

	c.Set(helpers.ContextUserID, userID)
	c.Set(helpers.ContextRole, model.Role(role))

	c.Next()
}

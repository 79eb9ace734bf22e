package respond

import (
	"github.com/gin-gonic/gin"

	"jd-backend/internal/shared/telemetry"
)

// ErrorResponse is the error envelope consumed by the dashboard UI:
// a caller-facing message plus optional per-check details.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Error sends a standardized error response. The code is for server-side
// logs only and never reaches the caller.
func Error(c *gin.Context, status int, code, message string, details []string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"details":    details,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

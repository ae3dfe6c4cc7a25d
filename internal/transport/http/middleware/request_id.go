package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookerhq/booker-backend/internal/infra/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	// Inbound ids longer than this are replaced rather than trusted.
	maxRequestIDLength = 64
)

// RequestID tags every request with a correlation id. A well-formed
// inbound X-Request-ID is kept so callers can correlate across
// services; anything else is replaced with a fresh UUID. The id is
// echoed in the response header and stored in the request context for
// the access log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = uuid.NewString()
		}

		c.Writer.Header().Set(requestIDHeader, reqID)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey{}, reqID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

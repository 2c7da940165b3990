package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beemotools/beemo-exporter/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID attaches a correlation id to the request context, where the
// logger picks it up, and echoes it in the response. An id supplied by the
// caller is kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

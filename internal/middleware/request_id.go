package middleware

import (
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestID accepts a caller-supplied id or mints one, echoes it back in the
// response header, and binds a request-scoped logger into the context.
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Writer.Header().Set(RequestIDHeader, rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		if logger != nil {
			ctx = contextutil.WithLogger(ctx, logger.With(zap.String("request_id", rid)))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

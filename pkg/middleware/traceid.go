package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vivubot/pkg/utils"
)

const TraceIDHeader = "X-Trace-ID"

// TraceIDMiddleware reuses an inbound X-Trace-ID or mints one, and installs
// a request logger carrying it.
func TraceIDMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" || len(traceID) > 64 {
			traceID = uuid.New().String()
		}
		c.Set(utils.TraceIDKey, traceID)
		c.Set(utils.LoggerKey, logger.With(zap.String(utils.TraceIDKey, traceID)))
		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Next()
	}
}

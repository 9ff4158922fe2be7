package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prehab-dev/prehab/internal/types"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, attaches a request-scoped
// logger to the request context and writes one access-log line.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, requestID)

		reqLog := log.With().Str("request_id", requestID).Logger()
		ctx.Request = ctx.Request.WithContext(reqLog.WithContext(ctx.Request.Context()))

		ctx.Next()

		status := ctx.Writer.Status()
		event := reqLog.Info()
		if status >= 500 {
			event = reqLog.Error()
		}

		if user, ok := ctx.Get(types.ContextUserKey); ok {
			if authenticated, ok := user.(AuthenticatedUser); ok {
				event = event.Uint("user_id", authenticated.ID)
			}
		}

		event.
			Str("method", ctx.Request.Method).
			Str("route", routeOf(ctx)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	}
}

func routeOf(ctx *gin.Context) string {
	if route := ctx.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prehab-dev/prehab/internal/metrics"
)

// Metrics records request counts and latency labelled by route template,
// never by raw path.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()

		ctx.Next()

		metrics.RecordHttpRequest(
			ctx.Request.Method,
			routeOf(ctx),
			strconv.Itoa(ctx.Writer.Status()),
			time.Since(startTime),
		)
	}
}

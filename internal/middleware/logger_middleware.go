package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/gatherly/gatherly/internal/metrics"
)

// RequestLogger emits one structured log line per request and feeds the
// request counter.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, strconv.Itoa(status)).Inc()

		event := log.Info()
		if status >= 500 {
			event = log.Error()
		}
		if userID, exists := c.Get("user_id"); exists {
			event = event.Interface("user_id", userID)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

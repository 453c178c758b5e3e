package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.
			Str("method", strings.ToUpper(c.Request.Method)).
			Str("path", path).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds())
		if ownerID, ok := c.Get(OwnerIDKey); ok {
			if id, ok := ownerID.(uuid.UUID); ok {
				event = event.Str("owner_id", id.String())
			}
		}
		event.Msg("HTTP request")
	}
}

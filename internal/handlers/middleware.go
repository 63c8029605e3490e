package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs one line per request once the handler has finished.
// WebSocket upgrades are logged when the stream closes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	status := c.Writer.Status()
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", status,
		"latency_ms", time.Since(start).Milliseconds(),
		"client_ip", c.ClientIP(),
	}
	switch {
	case status >= 500:
		h.log.Errorw("http_request", fields...)
	case status >= 400:
		h.log.Warnw("http_request", fields...)
	default:
		h.log.Debugw("http_request", fields...)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current dashboard
// @Description  Latest telemetry snapshot (formatted), connection state and last-update text.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.DashboardView
// @Router       /api/v1/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Dashboard.Current())
}

// @Summary      Firmware version
// @Description  Version reported by the device, or "Unknown".
// @Tags         device
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/device/version [get]
func (h *Handler) getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.services.DeviceInfo.Version(c.Request.Context()),
	})
}

package handlers

import (
	"errors"
	"net/http"

	"geiger_console/internal/service"
	"geiger_console/internal/transport"

	"github.com/gin-gonic/gin"
)

const (
	statusClosed = "closed"

	errLoadConfig      = "failed to load configuration"
	errSaveConfig      = "failed to save configuration"
	errOpenSession     = "failed to open configuration session"
	errInvalidBodyPref = "invalid body: "
)

// formError maps a config operation error to an HTTP status.
func formError(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownField), errors.Is(err, service.ErrFieldType):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, service.ErrRequiredField):
		return http.StatusUnprocessableEntity
	case transport.Classify(err) != "":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// @Summary      Open configuration session
// @Description  Starts the tick-suppression heartbeat and loads the device configuration.
// @Tags         config
// @Produce      json
// @Success      200  {object}  service.FormView
// @Failure      502  {object}  map[string]interface{}  "error, form"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/config/session [post]
func (h *Handler) openSession(c *gin.Context) {
	view, err := h.services.ConfigEditor.Open(c.Request.Context())
	if err != nil {
		if transport.Classify(err) == "" {
			h.logAndJSONError(c, http.StatusInternalServerError, errOpenSession, "config_session_open_failed", err)
			return
		}
		if h.log != nil {
			h.log.Warnw("config_session_load_failed", "err", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errLoadConfig, "form": view})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Close configuration session
// @Description  Stops the heartbeat; the device resumes ticking once its lease expires.
// @Tags         config
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/config/session [delete]
func (h *Handler) closeSession(c *gin.Context) {
	h.services.ConfigEditor.Close()
	c.JSON(http.StatusOK, gin.H{"status": statusClosed})
}

// @Summary      Session state
// @Tags         config
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "open, lease"
// @Router       /api/v1/config/session [get]
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"open":  h.services.ConfigEditor.IsOpen(),
		"lease": h.services.ConfigEditor.Lease(),
	})
}

// @Summary      Current form
// @Tags         config
// @Produce      json
// @Success      200  {object}  service.FormView
// @Router       /api/v1/config/form [get]
func (h *Handler) getForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ConfigEditor.View())
}

// @Summary      Edit form fields
// @Description  Partial update. Checkboxes take booleans, numeric fields take a number or its text.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        body  body   map[string]interface{}  true  "Field changes"
// @Success      200   {object}  service.FormView
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/config/form [patch]
func (h *Handler) editForm(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	view, err := h.services.ConfigEditor.Edit(changes)
	if err != nil {
		c.JSON(formError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Reset form
// @Description  Discards edits and restores the last loaded configuration.
// @Tags         config
// @Produce      json
// @Success      200  {object}  service.FormView
// @Router       /api/v1/config/form/reset [post]
func (h *Handler) resetForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ConfigEditor.Reset())
}

// @Summary      Toggle section
// @Tags         config
// @Produce      json
// @Param        id   path      string  true  "Section id"  Enums(wifi,misc,transmission,mqtt,alarm,lora)
// @Success      200  {object}  service.FormView
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/config/sections/{id}/toggle [post]
func (h *Handler) toggleSection(c *gin.Context) {
	view, err := h.services.ConfigEditor.ToggleSection(c.Param("id"))
	if err != nil {
		c.JSON(formError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Save configuration
// @Description  Validates the form, stops the heartbeat and sends the settings. The device restarts on success.
// @Tags         config
// @Produce      json
// @Success      200  {object}  service.FormView
// @Failure      422  {object}  map[string]interface{}  "error, form"
// @Failure      502  {object}  map[string]interface{}  "error, form"
// @Router       /api/v1/config/save [post]
func (h *Handler) saveConfig(c *gin.Context) {
	view, err := h.services.ConfigEditor.Save(c.Request.Context())
	if err != nil {
		code := formError(err)
		msg := errSaveConfig
		if code == http.StatusUnprocessableEntity {
			msg = err.Error()
		} else if h.log != nil {
			h.log.Errorw("config_save_failed", "err", err)
		}
		c.JSON(code, gin.H{"error": msg, "form": view})
		return
	}
	c.JSON(http.StatusOK, view)
}

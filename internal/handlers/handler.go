package handlers

import (
	"geiger_console/internal/logger"
	"geiger_console/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	hub      *Hub
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. A nil hub
// gives WebSocket clients the initial dashboard and clock updates only.
func NewHandler(services *service.Service, hub *Hub, log *logger.Logger) *Handler {
	if hub == nil {
		hub = NewHub()
	}
	return &Handler{services: services, hub: hub, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// live dashboard stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/dashboard", h.getDashboard)
		api.GET("/device/version", h.getVersion)
		h.registerConfigRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerConfigRoutes(api *gin.RouterGroup) {
	cfg := api.Group("/config")
	{
		cfg.POST("/session", h.openSession)
		cfg.DELETE("/session", h.closeSession)
		cfg.GET("/session", h.getSession)
		cfg.GET("/form", h.getForm)
		// Body example: {"mqttPort":"8883","sendToMqtt":true}
		cfg.PATCH("/form", h.editForm)
		cfg.POST("/form/reset", h.resetForm)
		cfg.POST("/sections/:id/toggle", h.toggleSection)
		cfg.POST("/save", h.saveConfig)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}

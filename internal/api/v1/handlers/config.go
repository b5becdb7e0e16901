package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingmind/internal/api/v1/services"
)

// ConfigHandler exposes feature availability and provider health
type ConfigHandler struct {
	service services.ConfigService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(service services.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

// Get handles GET /api/v1/config
//
// @Summary Feature availability
// @Description Tells clients which features the configured provider keys enable
// @Tags config
// @Produce json
// @Success 200 {object} dto.ConfigResponse "Configuration"
// @Router /config [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetConfig(c.Request.Context()))
}

// ProviderStats handles GET /api/v1/providers/stats
//
// @Summary Provider statistics
// @Description Request counts, success rate and average latency per external provider since startup
// @Tags config
// @Produce json
// @Success 200 {object} dto.ProviderStatsResponse "Provider statistics"
// @Router /providers/stats [get]
func (h *ConfigHandler) ProviderStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetProviderStats(c.Request.Context()))
}

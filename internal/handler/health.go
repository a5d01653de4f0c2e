package handler

import (
	"net/http"

	"trading-assistant/pkg/tracing"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns service status and build version
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": tracing.Version})
}

// Capabilities godoc
// @Summary      Optional features
// @Description  Reports which optional features this server has configured
// @Tags         health
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  domain.Capabilities
// @Router       /api/capabilities [get]
func (h *Handler) Capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.Assistant.Capabilities())
}

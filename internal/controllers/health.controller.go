package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store Pinger
	cache Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// WithCache adds the recipe cache to the health report. An unreachable
// cache marks the service degraded but keeps the 200, since recipe reads
// fall through to the catalog.
func (hc *HealthController) WithCache(cache Pinger) *HealthController {
	hc.cache = cache
	return hc
}

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (hc *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "FlavourFit API is running. Use /api/recipes/recommend for recommendations.",
	})
}

// Health godoc
// @Summary Health check
// @Description Reports whether the profile store and, when enabled, the recipe cache answer a ping
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok", "database": "ok"}

	if hc.cache != nil {
		body["cache"] = "ok"
		if err := hc.cache.Ping(ctx); err != nil {
			body["status"] = "degraded"
			body["cache"] = "unreachable"
			body["cacheError"] = err.Error()
		}
	}

	if err := hc.store.Ping(ctx); err != nil {
		body["status"] = "degraded"
		body["database"] = "unreachable"
		body["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	c.JSON(http.StatusOK, body)
}

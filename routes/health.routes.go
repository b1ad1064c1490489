package routes

import (
	"flavourfit/internal/controllers"
	"flavourfit/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func RegisterHealthRoutes(router *gin.Engine, healthController *controllers.HealthController, gatherer prometheus.Gatherer) {
	router.GET("/", healthController.Root)
	router.GET("/health", healthController.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
}

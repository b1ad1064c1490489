package routes

import (
	"flavourfit/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRecommendationRoutes mounts the ranked recipe endpoints. The static
// merged route takes precedence over the :type parameter.
func RegisterRecommendationRoutes(router *gin.Engine, recommendationController *controllers.RecommendationController, auth gin.HandlerFunc) {
	recommendRoutes := router.Group("/api/recipes/recommend")
	recommendRoutes.Use(auth)
	{
		recommendRoutes.POST("", recommendationController.RecommendAll)
		recommendRoutes.POST("/merged", recommendationController.RecommendMerged)
		recommendRoutes.POST("/:type", recommendationController.RecommendByType)
	}
}

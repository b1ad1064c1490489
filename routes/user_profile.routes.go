package routes

import (
	"flavourfit/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterUserProfileRoutes(router *gin.Engine, userProfileController *controllers.UserProfileController, auth gin.HandlerFunc) {
	profileRoutes := router.Group("/api")
	profileRoutes.Use(auth)
	{
		profileRoutes.GET("/get-preferences", userProfileController.GetPreferences)
		profileRoutes.POST("/save-preferences", userProfileController.SavePreferences)
	}
}

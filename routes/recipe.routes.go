package routes

import (
	"flavourfit/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRecipeRoutes(router *gin.Engine, recipeController *controllers.RecipeController) {
	recipeRoutes := router.Group("/api")
	{
		recipeRoutes.GET("/recipe-of-the-day", recipeController.RecipeOfTheDay)
		recipeRoutes.GET("/recipes/:id", recipeController.GetRecipeByID)
	}
}

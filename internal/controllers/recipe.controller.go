package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"flavourfit/internal/foodoscope"
	"flavourfit/internal/logger"
	"flavourfit/internal/recommendation"

	"github.com/gin-gonic/gin"
)

// RecipeCatalog is the part of the recipe catalog client used by the recipe
// pages.
type RecipeCatalog interface {
	RecipeOfTheDayID(ctx context.Context) (string, error)
	RecipeDetail(ctx context.Context, id string) (*foodoscope.Detail, error)
}

type RecipeController struct {
	catalog RecipeCatalog
	log     *logger.Logger
}

func NewRecipeController(catalog RecipeCatalog, log *logger.Logger) *RecipeController {
	if log == nil {
		log = logger.NewNop()
	}
	return &RecipeController{catalog: catalog, log: log.With("controller", "RecipeController")}
}

// RecipeOfTheDay godoc
// @Summary Recipe of the day
// @Description Resolve today's featured recipe and return its full view
// @Tags recipes
// @Produce json
// @Success 200 {object} models.RecipeDetail
// @Failure 400 {object} map[string]interface{} "Catalog rejected the request"
// @Failure 500 {object} map[string]interface{} "Failed to fetch daily recipe"
// @Router /api/recipe-of-the-day [get]
func (rc *RecipeController) RecipeOfTheDay(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := rc.catalog.RecipeOfTheDayID(ctx)
	if err != nil {
		var upErr *foodoscope.UpstreamError
		if errors.As(err, &upErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": upErr.Message})
			return
		}
		rc.log.Error("recipe of the day lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch daily recipe",
			"details": err.Error(),
		})
		return
	}

	detail, err := rc.catalog.RecipeDetail(ctx, id)
	if err != nil {
		rc.log.Error("recipe of the day detail failed", "recipe_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch recipe details",
			"details": err.Error(),
		})
		return
	}

	view := recommendation.MapRecipeDetail(detail.Recipe, detail.Ingredients)
	if view.ID == "" {
		view.ID = id
	}
	c.JSON(http.StatusOK, view)
}

// GetRecipeByID godoc
// @Summary Recipe detail
// @Description Full view of one catalog recipe, including ingredients, processes and utensils
// @Tags recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} models.RecipeDetail
// @Failure 400 {object} map[string]interface{} "Missing recipe id"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Failure 500 {object} map[string]interface{} "Failed to fetch recipe details"
// @Router /api/recipes/{id} [get]
func (rc *RecipeController) GetRecipeByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing recipe id"})
		return
	}

	detail, err := rc.catalog.RecipeDetail(c.Request.Context(), id)
	if errors.Is(err, foodoscope.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		rc.log.Error("recipe detail failed", "recipe_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch recipe details",
			"details": err.Error(),
		})
		return
	}

	view := recommendation.MapRecipeDetail(detail.Recipe, detail.Ingredients)
	if view.ID == "" {
		view.ID = id
	}
	c.JSON(http.StatusOK, view)
}

package controllers

import (
	"context"
	"errors"
	"net/http"

	"flavourfit/internal/logger"
	"flavourfit/internal/middleware"
	"flavourfit/internal/recommendation"

	"github.com/gin-gonic/gin"
)

// Recommender ranks catalog recipes for a user.
type Recommender interface {
	RecommendCategory(ctx context.Context, clerkID, category string) (recommendation.CategoryResult, error)
	RecommendAll(ctx context.Context, clerkID string) recommendation.Overview
	RecommendMerged(ctx context.Context, clerkID string) recommendation.CategoryResult
}

type RecommendationController struct {
	service Recommender
	log     *logger.Logger
}

func NewRecommendationController(service Recommender, log *logger.Logger) *RecommendationController {
	if log == nil {
		log = logger.NewNop()
	}
	return &RecommendationController{service: service, log: log.With("controller", "RecommendationController")}
}

// RecommendByType godoc
// @Summary Recommend recipes for one nutrient
// @Description Fetch catalog recipes inside the user's range for the nutrient and rank them by match. Upstream failures are reported in "error" with status 200.
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param type path string true "Nutrient type" Enums(calories, energy, carbs, protein)
// @Success 200 {object} recommendation.CategoryResult
// @Failure 400 {object} map[string]interface{} "Invalid nutrient type"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/recipes/recommend/{type} [post]
func (rc *RecommendationController) RecommendByType(c *gin.Context) {
	clerkID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	category := c.Param("type")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type parameter"})
		return
	}

	res, err := rc.service.RecommendCategory(c.Request.Context(), clerkID, category)
	if errors.Is(err, recommendation.ErrInvalidCategory) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nutrient type"})
		return
	}
	if err != nil {
		rc.log.Error("category recommendation failed", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	rc.log.Debug("category recommendation", "category", category, "count", len(res.Recipes), "upstream_error", res.Error)
	c.JSON(http.StatusOK, res)
}

// RecommendAll godoc
// @Summary Recommend recipes for every nutrient
// @Description Run the four nutrient pipelines concurrently and return the top six of each. The last upstream failure, if any, is reported in "error".
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} recommendation.Overview
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/recipes/recommend [post]
func (rc *RecommendationController) RecommendAll(c *gin.Context) {
	clerkID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, rc.service.RecommendAll(c.Request.Context(), clerkID))
}

// RecommendMerged godoc
// @Summary Merged recommendations
// @Description Run the four nutrient pipelines, deduplicate by recipe id and return the best fifty.
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} recommendation.CategoryResult
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/recipes/recommend/merged [post]
func (rc *RecommendationController) RecommendMerged(c *gin.Context) {
	clerkID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, rc.service.RecommendMerged(c.Request.Context(), clerkID))
}

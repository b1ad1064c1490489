package controllers

import (
	"errors"
	"net/http"

	"flavourfit/internal/logger"
	"flavourfit/internal/middleware"
	"flavourfit/internal/models"
	"flavourfit/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserProfileController struct {
	repo repository.UserProfileRepository
	log  *logger.Logger
}

func NewUserProfileController(repo repository.UserProfileRepository, log *logger.Logger) *UserProfileController {
	if log == nil {
		log = logger.NewNop()
	}
	return &UserProfileController{repo: repo, log: log.With("controller", "UserProfileController")}
}

// GetPreferences godoc
// @Summary Get dietary preferences
// @Description Retrieve the authenticated user's stored preference document
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Stored profile under \"user\""
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Failure 500 {object} map[string]interface{} "Failed to fetch preferences"
// @Router /api/get-preferences [get]
func (pc *UserProfileController) GetPreferences(c *gin.Context) {
	clerkID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	profile, err := pc.repo.FindByClerkID(c.Request.Context(), clerkID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		pc.log.Error("fetch preferences failed", "clerk_id", clerkID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch preferences",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// SavePreferences godoc
// @Summary Save dietary preferences
// @Description Create or replace the authenticated user's preference document
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body SavePreferencesRequest true "Onboarding form"
// @Success 200 {object} map[string]interface{} "Preferences saved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid preferences"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed to save preferences"
// @Router /api/save-preferences [post]
func (pc *UserProfileController) SavePreferences(c *gin.Context) {
	clerkID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	prefs := req.Preferences()
	if err := prefs.Validate(); err != nil {
		var vErr *models.ValidationError
		details := err.Error()
		if errors.As(err, &vErr) {
			details = vErr.Field + " " + vErr.Reason
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid preferences",
			"error":   details,
		})
		return
	}

	email := c.GetString(middleware.EmailKey)

	profile, err := pc.repo.Upsert(c.Request.Context(), clerkID, email, prefs)
	if err != nil {
		pc.log.Error("save preferences failed", "clerk_id", clerkID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to save preferences",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences saved successfully",
		"user":    profile,
	})
}

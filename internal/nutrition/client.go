// Package nutrition talks to the nutrition-scoring backend that turns a user
// profile into per-nutrient target ranges.
package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"flavourfit/internal/logger"
	"flavourfit/internal/metrics"
	"flavourfit/internal/models"
)

// ProfileFinder is the slice of the profile store the client needs.
type ProfileFinder interface {
	FindByClerkID(ctx context.Context, clerkID string) (*models.UserProfile, error)
}

// Client resolves nutrient ranges for a user. GetNutrientRanges never fails:
// any problem on the way yields FallbackRanges.
type Client interface {
	GetNutrientRanges(ctx context.Context, clerkID string) models.NutrientRangeSet
}

type httpClient struct {
	url      string
	http     *http.Client
	profiles ProfileFinder
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// Options configures NewClient. Zero values are replaced with defaults.
type Options struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
}

const DefaultURL = "http://127.0.0.1:8000/recommend"

func NewClient(profiles ProfileFinder, opts Options) Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &httpClient{
		url:      opts.URL,
		http:     opts.HTTPClient,
		profiles: profiles,
		log:      opts.Logger,
		metrics:  opts.Metrics,
	}
}

var activityMap = map[string]string{
	"sedentary":         "sedentary",
	"lightly-active":    "light",
	"moderately-active": "moderately_active",
	"very-active":       "active",
	"extra-active":      "active",
}

var goalMap = map[string]string{
	"weight-loss":     "weight_loss",
	"muscle-gain":     "muscle_gain",
	"maintenance":     "maintenance",
	"improved-health": "maintenance",
}

// MapActivity converts a stored activity level to the backend vocabulary.
func MapActivity(level string) string {
	if v, ok := activityMap[level]; ok {
		return v
	}
	return "moderately_active"
}

// MapGoal converts a stored primary goal to the backend vocabulary.
func MapGoal(goal string) string {
	if v, ok := goalMap[goal]; ok {
		return v
	}
	return "maintenance"
}

type recommendRequest struct {
	UserID            string   `json:"user_id"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	Weight            float64  `json:"weight"`
	Height            float64  `json:"height"`
	ActivityLevel     string   `json:"activityLevel"`
	DietaryPreference string   `json:"dietaryPreference"`
	PrimaryGoal       string   `json:"primaryGoal"`
	Allergies         []string `json:"allergies"`
	MedicalHistory    []string `json:"medicalHistory"`
	HealthGoals       []string `json:"healthGoals"`
}

func buildRequest(profile *models.UserProfile) recommendRequest {
	prefs := profile.Preferences.Data()
	userID := profile.ClerkID
	if userID == "" {
		userID = "default"
	}
	goal := MapGoal(prefs.PrimaryGoal)

	req := recommendRequest{
		UserID:            userID,
		Age:               int(math.Round(prefs.Age)),
		Gender:            prefs.Gender,
		Weight:            prefs.Weight,
		Height:            prefs.Height,
		ActivityLevel:     MapActivity(prefs.ActivityLevel),
		DietaryPreference: prefs.DietaryPreference,
		PrimaryGoal:       goal,
		Allergies:         prefs.Allergies,
		MedicalHistory:    prefs.MedicalHistory,
		HealthGoals:       []string{goal},
	}
	if req.Allergies == nil {
		req.Allergies = []string{}
	}
	if req.MedicalHistory == nil {
		req.MedicalHistory = []string{}
	}
	return req
}

func (c *httpClient) GetNutrientRanges(ctx context.Context, clerkID string) models.NutrientRangeSet {
	ranges, err := c.fetch(ctx, clerkID)
	if err != nil {
		c.log.Error("nutrient ranges unavailable, using fallback", "clerk_id", clerkID, "error", err)
		c.metrics.IncRangeFallback()
		return FallbackRanges()
	}
	return ranges
}

func (c *httpClient) fetch(ctx context.Context, clerkID string) (models.NutrientRangeSet, error) {
	var out models.NutrientRangeSet

	profile, err := c.profiles.FindByClerkID(ctx, clerkID)
	if err != nil {
		return out, fmt.Errorf("load profile: %w", err)
	}

	body, err := json.Marshal(buildRequest(profile))
	if err != nil {
		return out, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(metrics.UpstreamNutrition, metrics.OutcomeNetwork, time.Since(start))
		return out, fmt.Errorf("call nutrition backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveUpstream(metrics.UpstreamNutrition, metrics.OutcomeNetwork, time.Since(start))
		return out, fmt.Errorf("read nutrition response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.ObserveUpstream(metrics.UpstreamNutrition, metrics.OutcomeStatus, time.Since(start))
		return out, fmt.Errorf("nutrition backend returned status %d: %s", resp.StatusCode, logger.Truncate(string(raw), 256))
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		c.metrics.ObserveUpstream(metrics.UpstreamNutrition, metrics.OutcomeMalformed, time.Since(start))
		return out, fmt.Errorf("decode nutrition response: %w", err)
	}
	if len(out.NutrientRanges) == 0 {
		c.metrics.ObserveUpstream(metrics.UpstreamNutrition, metrics.OutcomeMalformed, time.Since(start))
		return out, fmt.Errorf("nutrition response has no nutrient_ranges")
	}

	c.metrics.ObserveUpstream(metrics.UpstreamNutrition, metrics.OutcomeOK, time.Since(start))
	return out, nil
}

// FallbackRanges is served whenever the backend cannot be used.
func FallbackRanges() models.NutrientRangeSet {
	return models.NutrientRangeSet{
		NutrientRanges: map[string]models.NutrientRange{
			models.NutrientCarbs:    {Min: 10, Max: 100},
			models.NutrientProtein:  {Min: 10, Max: 100},
			models.NutrientEnergy:   {Min: 100, Max: 800},
			models.NutrientCalories: {Min: 100, Max: 800},
		},
		TargetNutrients: map[string]float64{
			models.NutrientCarbs:    50,
			models.NutrientProtein:  50,
			models.NutrientEnergy:   500,
			models.NutrientCalories: 500,
		},
		Weights: map[string]float64{
			models.NutrientCarbs:    1,
			models.NutrientProtein:  1,
			models.NutrientEnergy:   1,
			models.NutrientCalories: 1,
		},
	}
}

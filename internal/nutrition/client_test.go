package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flavourfit/internal/metrics"
	"flavourfit/internal/mocks"
	"flavourfit/internal/models"
	"flavourfit/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		ClerkID: "user_123",
		Email:   "jane@example.com",
		Preferences: datatypes.NewJSONType(models.Preferences{
			Age:               29.6,
			Gender:            "female",
			Height:            168,
			Weight:            61.5,
			ActivityLevel:     "lightly-active",
			PrimaryGoal:       "improved-health",
			DietaryPreference: "vegetarian",
			Allergies:         []string{"Peanut"},
		}),
	}
}

func TestMapActivity(t *testing.T) {
	tests := map[string]string{
		"sedentary":         "sedentary",
		"lightly-active":    "light",
		"moderately-active": "moderately_active",
		"very-active":       "active",
		"extra-active":      "active",
		"couch":             "moderately_active",
		"":                  "moderately_active",
	}
	for in, want := range tests {
		assert.Equal(t, want, MapActivity(in), in)
	}
}

func TestMapGoal(t *testing.T) {
	tests := map[string]string{
		"weight-loss":     "weight_loss",
		"muscle-gain":     "muscle_gain",
		"maintenance":     "maintenance",
		"improved-health": "maintenance",
		"bulk":            "maintenance",
	}
	for in, want := range tests {
		assert.Equal(t, want, MapGoal(in), in)
	}
}

func TestGetNutrientRanges_Success(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"nutrient_ranges": {"Protein (g)": {"min": 20, "max": 45}},
			"target_nutrients": {"Protein (g)": 30},
			"weights": {"Protein (g)": 2}
		}`))
	}))
	defer srv.Close()

	repo := new(mocks.MockUserProfileRepository)
	repo.On("FindByClerkID", mock.Anything, "user_123").Return(testProfile(), nil)

	client := NewClient(repo, Options{URL: srv.URL, Timeout: time.Second})
	ranges := client.GetNutrientRanges(context.Background(), "user_123")

	assert.Equal(t, models.NutrientRange{Min: 20, Max: 45}, ranges.NutrientRanges["Protein (g)"])
	assert.Equal(t, 30.0, ranges.TargetNutrients["Protein (g)"])
	assert.Equal(t, 2.0, ranges.Weights["Protein (g)"])

	assert.Equal(t, "user_123", got["user_id"])
	assert.Equal(t, 30.0, got["age"])
	assert.Equal(t, "light", got["activityLevel"])
	assert.Equal(t, "maintenance", got["primaryGoal"])
	assert.Equal(t, []interface{}{"maintenance"}, got["healthGoals"])
	assert.Equal(t, []interface{}{"Peanut"}, got["allergies"])
	assert.Equal(t, []interface{}{}, got["medicalHistory"])
	repo.AssertExpectations(t)
}

func TestGetNutrientRanges_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		repoErr error
	}{
		{
			name:    "profile not found",
			repoErr: repository.ErrProfileNotFound,
		},
		{
			name:    "store failure",
			repoErr: errors.New("connection reset"),
		},
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
		},
		{
			name: "no ranges",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"nutrient_ranges": {}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.handler
			if handler == nil {
				handler = func(w http.ResponseWriter, r *http.Request) {
					t.Error("backend must not be called")
				}
			}
			srv := httptest.NewServer(handler)
			defer srv.Close()

			repo := new(mocks.MockUserProfileRepository)
			if tt.repoErr != nil {
				repo.On("FindByClerkID", mock.Anything, "user_123").Return(nil, tt.repoErr)
			} else {
				repo.On("FindByClerkID", mock.Anything, "user_123").Return(testProfile(), nil)
			}

			reg := prometheus.NewRegistry()
			m, err := metrics.New("test", reg)
			require.NoError(t, err)

			client := NewClient(repo, Options{URL: srv.URL, Timeout: time.Second, Metrics: m})
			ranges := client.GetNutrientRanges(context.Background(), "user_123")

			assert.Equal(t, FallbackRanges(), ranges)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.RangeFallbacks()))
		})
	}
}

func TestGetNutrientRanges_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	repo := new(mocks.MockUserProfileRepository)
	repo.On("FindByClerkID", mock.Anything, "user_123").Return(testProfile(), nil)

	client := NewClient(repo, Options{URL: url, Timeout: time.Second})
	assert.Equal(t, FallbackRanges(), client.GetNutrientRanges(context.Background(), "user_123"))
}

func TestFallbackRanges(t *testing.T) {
	ranges := FallbackRanges()

	assert.Len(t, ranges.NutrientRanges, 4)
	assert.Equal(t, models.NutrientRange{Min: 10, Max: 100}, ranges.NutrientRanges[models.NutrientCarbs])
	assert.Equal(t, models.NutrientRange{Min: 10, Max: 100}, ranges.NutrientRanges[models.NutrientProtein])
	assert.Equal(t, models.NutrientRange{Min: 100, Max: 800}, ranges.NutrientRanges[models.NutrientEnergy])
	assert.Equal(t, models.NutrientRange{Min: 100, Max: 800}, ranges.NutrientRanges[models.NutrientCalories])
	assert.Equal(t, 500.0, ranges.TargetNutrients[models.NutrientCalories])
	for name, w := range ranges.Weights {
		assert.Equal(t, 1.0, w, name)
	}

	// Callers may mutate the result.
	ranges.NutrientRanges[models.NutrientCarbs] = models.NutrientRange{}
	assert.Equal(t, models.NutrientRange{Min: 10, Max: 100}, FallbackRanges().NutrientRanges[models.NutrientCarbs])
}

package models

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// UserProfile is the persisted preference document of one identity-provider user.
type UserProfile struct {
	ID          uint                            `gorm:"primaryKey" json:"-"`
	CreatedAt   time.Time                       `json:"createdAt" example:"2025-01-01T00:00:00Z"`
	UpdatedAt   time.Time                       `json:"updatedAt" example:"2025-01-01T00:00:00Z"`
	ClerkID     string                          `gorm:"uniqueIndex;size:191;not null" json:"clerkId" example:"user_2abc"`
	Email       string                          `json:"email" example:"jane@example.com"`
	Preferences datatypes.JSONType[Preferences] `json:"preferences" swaggertype:"object"`
}

type Preferences struct {
	Age    float64 `json:"age" bson:"age"`
	Gender string  `json:"gender" bson:"gender"`
	Height float64 `json:"height" bson:"height"`
	Weight float64 `json:"weight" bson:"weight"`

	ActivityLevel string `json:"activityLevel" bson:"activity_level"`
	PrimaryGoal   string `json:"primaryGoal" bson:"primary_goal"`

	MedicalHistory    []string `json:"medicalHistory" bson:"medical_history"`
	Allergies         []string `json:"allergies" bson:"allergies"`
	DietaryPreference string   `json:"dietaryPreference" bson:"dietary_preference"`

	PreviousDiet       string `json:"previousDiet" bson:"previous_diet"`
	PreviousDietRating string `json:"previousDietRating" bson:"previous_diet_rating"`
	Alcohol            string `json:"alcohol" bson:"alcohol"`

	Cuisines          []string          `json:"cuisines" bson:"cuisines"`
	FlavorPreferences FlavorPreferences `json:"flavorPreferences" bson:"flavor_preferences"`
	MacroPreferences  MacroPreferences  `json:"macroPreferences" bson:"macro_preferences"`

	WakeUpTime  string    `json:"wakeUpTime" bson:"wake_up_time"`
	SleepTime   string    `json:"sleepTime" bson:"sleep_time"`
	MealsPerDay string    `json:"mealsPerDay" bson:"meals_per_day"`
	MealTimes   MealTimes `json:"mealTimes" bson:"meal_times"`
}

type FlavorPreferences struct {
	SpiceLevel int `json:"spiceLevel" bson:"spice_level"`
	Sweetness  int `json:"sweetness" bson:"sweetness"`
}

type MacroPreferences struct {
	Protein int `json:"protein" bson:"protein"`
	Carbs   int `json:"carbs" bson:"carbs"`
	Fats    int `json:"fats" bson:"fats"`
}

type MealTimes struct {
	Breakfast string `json:"breakfast" bson:"breakfast"`
	Lunch     string `json:"lunch" bson:"lunch"`
	Dinner    string `json:"dinner" bson:"dinner"`
}

var (
	Genders            = []string{"male", "female", "other", "prefer-not-to-say"}
	ActivityLevels     = []string{"sedentary", "lightly-active", "moderately-active", "very-active", "extra-active"}
	PrimaryGoals       = []string{"weight-loss", "muscle-gain", "maintenance", "improved-health"}
	DietaryPreferences = []string{"vegan", "vegetarian", "non-vegetarian", "pescatarian", "keto", "paleo", "gluten-free", "no-preference"}
	DietRatings        = []string{"worst", "bad", "neutral", "good", "very-good"}
	AlcoholFrequencies = []string{"none", "socially", "moderate", "frequent"}
	MealsPerDayOptions = []string{"3", "4", "5", "6+"}
)

const defaultScale = 3

// ValidationError reports the first preference field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Normalize fills defaults and clamps the 1-5 scales in place.
func (p *Preferences) Normalize() {
	if p.MedicalHistory == nil {
		p.MedicalHistory = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.Cuisines == nil {
		p.Cuisines = []string{}
	}
	if p.Alcohol == "" {
		p.Alcohol = "none"
	}

	p.FlavorPreferences.SpiceLevel = ClampScale(p.FlavorPreferences.SpiceLevel)
	p.FlavorPreferences.Sweetness = ClampScale(p.FlavorPreferences.Sweetness)
	p.MacroPreferences.Protein = ClampScale(p.MacroPreferences.Protein)
	p.MacroPreferences.Carbs = ClampScale(p.MacroPreferences.Carbs)
	p.MacroPreferences.Fats = ClampScale(p.MacroPreferences.Fats)
}

// positive is false for NaN and infinities as well as for v <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Validate checks presence of required fields and enum membership.
func (p *Preferences) Validate() error {
	if !positive(p.Age) {
		return &ValidationError{Field: "age", Reason: "is required"}
	}
	if !positive(p.Height) {
		return &ValidationError{Field: "height", Reason: "is required"}
	}
	if !positive(p.Weight) {
		return &ValidationError{Field: "weight", Reason: "is required"}
	}

	enums := []struct {
		field   string
		value   string
		allowed []string
		empty   bool
	}{
		{"gender", p.Gender, Genders, false},
		{"activityLevel", p.ActivityLevel, ActivityLevels, false},
		{"primaryGoal", p.PrimaryGoal, PrimaryGoals, false},
		{"dietaryPreference", p.DietaryPreference, DietaryPreferences, false},
		{"previousDietRating", p.PreviousDietRating, DietRatings, true},
		{"alcohol", p.Alcohol, AlcoholFrequencies, false},
		{"mealsPerDay", p.MealsPerDay, MealsPerDayOptions, false},
	}
	for _, e := range enums {
		if e.value == "" {
			if e.empty {
				continue
			}
			return &ValidationError{Field: e.field, Reason: "is required"}
		}
		if !slices.Contains(e.allowed, e.value) {
			return &ValidationError{
				Field:  e.field,
				Reason: fmt.Sprintf("must be one of %s", strings.Join(e.allowed, ", ")),
			}
		}
	}

	if strings.TrimSpace(p.WakeUpTime) == "" {
		return &ValidationError{Field: "wakeUpTime", Reason: "is required"}
	}
	if strings.TrimSpace(p.SleepTime) == "" {
		return &ValidationError{Field: "sleepTime", Reason: "is required"}
	}

	return nil
}

// ClampScale maps an unset value to the default and clamps the rest to [1,5].
func ClampScale(v int) int {
	switch {
	case v == 0:
		return defaultScale
	case v < 1:
		return 1
	case v > 5:
		return 5
	default:
		return v
	}
}

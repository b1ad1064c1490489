package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPreferences() Preferences {
	return Preferences{
		Age:               30,
		Gender:            "female",
		Height:            165,
		Weight:            60,
		ActivityLevel:     "lightly-active",
		PrimaryGoal:       "improved-health",
		DietaryPreference: "vegetarian",
		WakeUpTime:        "07:00",
		SleepTime:         "23:00",
		MealsPerDay:       "3",
	}
}

func TestPreferencesNormalize(t *testing.T) {
	p := validPreferences()
	p.FlavorPreferences = FlavorPreferences{SpiceLevel: 9, Sweetness: 0}
	p.MacroPreferences = MacroPreferences{Protein: -2, Carbs: 4, Fats: 0}

	p.Normalize()

	assert.Equal(t, 5, p.FlavorPreferences.SpiceLevel)
	assert.Equal(t, 3, p.FlavorPreferences.Sweetness)
	assert.Equal(t, 1, p.MacroPreferences.Protein)
	assert.Equal(t, 4, p.MacroPreferences.Carbs)
	assert.Equal(t, 3, p.MacroPreferences.Fats)
	assert.Equal(t, "none", p.Alcohol)
	assert.NotNil(t, p.Allergies)
	assert.NotNil(t, p.MedicalHistory)
	assert.NotNil(t, p.Cuisines)
}

func TestPreferencesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Preferences)
		field  string
	}{
		{name: "valid", mutate: func(p *Preferences) {}},
		{name: "missing age", mutate: func(p *Preferences) { p.Age = 0 }, field: "age"},
		{name: "NaN age", mutate: func(p *Preferences) { p.Age = math.NaN() }, field: "age"},
		{name: "infinite height", mutate: func(p *Preferences) { p.Height = math.Inf(1) }, field: "height"},
		{name: "NaN weight", mutate: func(p *Preferences) { p.Weight = math.NaN() }, field: "weight"},
		{name: "unknown gender", mutate: func(p *Preferences) { p.Gender = "robot" }, field: "gender"},
		{name: "unknown activity", mutate: func(p *Preferences) { p.ActivityLevel = "couch" }, field: "activityLevel"},
		{name: "unknown goal", mutate: func(p *Preferences) { p.PrimaryGoal = "bulk" }, field: "primaryGoal"},
		{name: "unknown diet", mutate: func(p *Preferences) { p.DietaryPreference = "carnivore" }, field: "dietaryPreference"},
		{name: "empty diet rating allowed", mutate: func(p *Preferences) { p.PreviousDietRating = "" }},
		{name: "unknown diet rating", mutate: func(p *Preferences) { p.PreviousDietRating = "meh" }, field: "previousDietRating"},
		{name: "unknown alcohol", mutate: func(p *Preferences) { p.Alcohol = "daily" }, field: "alcohol"},
		{name: "unknown meals per day", mutate: func(p *Preferences) { p.MealsPerDay = "7" }, field: "mealsPerDay"},
		{name: "missing wake up time", mutate: func(p *Preferences) { p.WakeUpTime = " " }, field: "wakeUpTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPreferences()
			p.Normalize()
			tt.mutate(&p)

			err := p.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRawRecipeAccessors(t *testing.T) {
	raw := RawRecipe{
		"Recipe_id":    float64(2800),
		"Calories":     "412.6",
		"Protein (g)":  float64(21.4),
		"servings":     "4 people",
		"Processes":    "boil||stir||serve",
		"dietary_tags": []interface{}{"Vegan", 3, "Quick"},
		"empty":        "",
		"null":         nil,
	}

	assert.Equal(t, "2800", raw.String("Recipe_id"))
	assert.Equal(t, "", raw.String("null"))
	assert.Equal(t, "", raw.String("missing"))

	f, ok := raw.Float("Calories")
	assert.True(t, ok)
	assert.InDelta(t, 412.6, f, 1e-9)

	f, ok = raw.Float("servings")
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)

	_, ok = raw.Float("empty")
	assert.False(t, ok)

	assert.Equal(t, []string{"boil", "stir", "serve"}, raw.List("Processes"))
	assert.Nil(t, raw.List("Utensils"))
	assert.Equal(t, []string{"Vegan", "Quick"}, raw.Strings("dietary_tags"))
}

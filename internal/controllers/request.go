package controllers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"flavourfit/internal/models"
)

// FlexNumber accepts a JSON number or a numeric string. Empty strings and
// null decode to zero; NaN and infinities are rejected.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(f) {
			return &models.ValidationError{Field: "number", Reason: "must be numeric, got " + strconv.Quote(s)}
		}
		*n = FlexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if !isFinite(f) {
		return &models.ValidationError{Field: "number", Reason: "must be finite"}
	}
	*n = FlexNumber(f)
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// scale narrows a 1-5 answer to int. Zero stays zero so Normalize applies
// the default; anything else is clamped before conversion.
func (n FlexNumber) scale() int {
	switch f := float64(n); {
	case f == 0:
		return 0
	case f < 1:
		return 1
	case f > 5:
		return 5
	default:
		return int(f)
	}
}

// FlexString accepts a JSON string or number, e.g. mealsPerDay sent as 3.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = FlexString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// SavePreferencesRequest is the flat onboarding form posted by the client.
type SavePreferencesRequest struct {
	Age    FlexNumber `json:"age" swaggertype:"number" example:"29"`
	Gender string     `json:"gender" example:"female"`
	Height FlexNumber `json:"height" swaggertype:"number" example:"168"`
	Weight FlexNumber `json:"weight" swaggertype:"number" example:"61.5"`

	ActivityLevel  string   `json:"activityLevel" example:"moderately-active"`
	PrimaryGoal    string   `json:"primaryGoal" example:"weight-loss"`
	MedicalHistory []string `json:"medicalHistory"`
	Allergies      []string `json:"allergies"`

	DietaryPreference  string   `json:"dietaryPreference" example:"vegetarian"`
	PreviousDiet       string   `json:"previousDiet"`
	PreviousDietRating string   `json:"previousDietRating" example:"neutral"`
	Alcohol            string   `json:"alcohol" example:"none"`
	Cuisines           []string `json:"cuisines"`

	SpiceLevel   FlexNumber `json:"spiceLevel" swaggertype:"integer" example:"3"`
	Sweetness    FlexNumber `json:"sweetness" swaggertype:"integer" example:"3"`
	ProteinLevel FlexNumber `json:"proteinLevel" swaggertype:"integer" example:"4"`
	CarbsLevel   FlexNumber `json:"carbsLevel" swaggertype:"integer" example:"2"`
	FatsLevel    FlexNumber `json:"fatsLevel" swaggertype:"integer" example:"3"`

	WakeUpTime  string           `json:"wakeUpTime" example:"07:00"`
	SleepTime   string           `json:"sleepTime" example:"23:00"`
	MealsPerDay FlexString       `json:"mealsPerDay" swaggertype:"string" example:"3"`
	MealTimes   models.MealTimes `json:"mealTimes"`
}

// Preferences maps the form onto the stored document shape.
func (r SavePreferencesRequest) Preferences() models.Preferences {
	prefs := models.Preferences{
		Age:                float64(r.Age),
		Gender:             r.Gender,
		Height:             float64(r.Height),
		Weight:             float64(r.Weight),
		ActivityLevel:      r.ActivityLevel,
		PrimaryGoal:        r.PrimaryGoal,
		MedicalHistory:     r.MedicalHistory,
		Allergies:          r.Allergies,
		DietaryPreference:  r.DietaryPreference,
		PreviousDiet:       r.PreviousDiet,
		PreviousDietRating: r.PreviousDietRating,
		Alcohol:            r.Alcohol,
		Cuisines:           r.Cuisines,
		FlavorPreferences: models.FlavorPreferences{
			SpiceLevel: r.SpiceLevel.scale(),
			Sweetness:  r.Sweetness.scale(),
		},
		MacroPreferences: models.MacroPreferences{
			Protein: r.ProteinLevel.scale(),
			Carbs:   r.CarbsLevel.scale(),
			Fats:    r.FatsLevel.scale(),
		},
		WakeUpTime:  r.WakeUpTime,
		SleepTime:   r.SleepTime,
		MealsPerDay: string(r.MealsPerDay),
		MealTimes:   r.MealTimes,
	}
	prefs.Normalize()
	return prefs
}

package models

import (
	"strconv"
	"strings"
)

// Nutrient keys used by the recipe catalog and the nutrition backend.
const (
	NutrientCalories = "Calories"
	NutrientEnergy   = "Energy (kcal)"
	NutrientProtein  = "Protein (g)"
	NutrientCarbs    = "Carbohydrate, by difference (g)"
	NutrientFat      = "Total lipid (fat) (g)"
)

type NutrientRange struct {
	Min float64 `json:"min" example:"10"`
	Max float64 `json:"max" example:"100"`
}

// NutrientRangeSet is the nutrition backend's answer for one profile.
type NutrientRangeSet struct {
	NutrientRanges  map[string]NutrientRange `json:"nutrient_ranges"`
	TargetNutrients map[string]float64       `json:"target_nutrients"`
	Weights         map[string]float64       `json:"weights"`
}

// RawRecipe is a recipe record exactly as the catalog returned it.
// Numeric fields arrive either as JSON numbers or as numeric strings.
type RawRecipe map[string]interface{}

// String renders the value at key as text. Absent, null, false and empty
// values yield "".
func (r RawRecipe) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

// Float reads a numeric-or-string value. A string is parsed up to its first
// non-numeric character; ok is false when nothing numeric is present.
func (r RawRecipe) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case string:
		return parseLeadingFloat(v)
	default:
		return 0, false
	}
}

// Strings returns the value at key when it is a list of strings.
func (r RawRecipe) Strings(key string) []string {
	items, ok := r[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// List splits a "||"-delimited field. Empty input yields nil.
func (r RawRecipe) List(key string) []string {
	s := r.String(key)
	if s == "" {
		return nil
	}
	return strings.Split(s, "||")
}

func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot := false, false
scan:
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '-' || c == '+') && i == 0:
		default:
			break scan
		}
		end = i + 1
	}
	if !seenDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// RecipeSummary is the scored card shown in recommendation lists.
type RecipeSummary struct {
	ID         string   `json:"id" example:"2800"`
	Name       string   `json:"name" example:"Spicy Lentil Soup"`
	Time       string   `json:"time" example:"25 min"`
	Calories   int      `json:"calories" example:"420"`
	Tags       []string `json:"tags"`
	Match      string   `json:"match" example:"92%"`
	Difficulty string   `json:"difficulty" example:"Easy"`
	Image      string   `json:"image"`

	Score int `json:"-"`
}

type Macros struct {
	Protein string `json:"protein" example:"24g"`
	Carbs   string `json:"carbs" example:"51g"`
	Fats    string `json:"fats" example:"N/A"`
}

// RecipeDetail is the full recipe view used by the detail and daily pages.
type RecipeDetail struct {
	ID          string   `json:"id" example:"2800"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Calories    int      `json:"calories"`
	PrepTime    string   `json:"prepTime" example:"20 min"`
	Servings    int      `json:"servings"`
	Difficulty  string   `json:"difficulty" example:"Medium"`
	Rating      float64  `json:"rating" example:"4.5"`
	Reviews     int      `json:"reviews" example:"120"`
	Tags        []string `json:"tags"`
	Macros      Macros   `json:"macros"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Processes   []string `json:"processes"`
	Utensils    []string `json:"utensils"`
}

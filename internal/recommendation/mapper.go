package recommendation

import (
	"fmt"
	"math"
	"unicode/utf16"

	"flavourfit/internal/models"

	"github.com/google/uuid"
)

const (
	defaultTitle      = "Delicious Recipe"
	defaultCookTime   = "25 min"
	defaultCalories   = 400
	defaultDifficulty = "Easy"

	minMatch = 70
	maxMatch = 98

	detailRating  = 4.5
	detailReviews = 120
)

var defaultTags = []string{"Healthy", "Balanced"}

// scoredNutrients are compared against the user's targets.
var scoredNutrients = []string{
	models.NutrientCalories,
	models.NutrientEnergy,
	models.NutrientProtein,
	models.NutrientCarbs,
}

// MapRecipe turns a catalog record into a scored summary card. targets and
// weights may be nil, in which case a stable pseudo-score is used.
func MapRecipe(raw models.RawRecipe, targets, weights map[string]float64) models.RecipeSummary {
	title := firstNonEmpty(raw.String("Recipe_title"), raw.String("name"), defaultTitle)

	score := matchScore(raw, title, targets, weights)

	tags := raw.Strings("dietary_tags")
	if tags == nil {
		tags = append([]string(nil), defaultTags...)
	}

	return models.RecipeSummary{
		ID:         recipeID(raw),
		Name:       title,
		Time:       firstNonEmpty(raw.String("cook_time"), defaultCookTime),
		Calories:   summaryCalories(raw),
		Tags:       tags,
		Match:      fmt.Sprintf("%d%%", score),
		Difficulty: firstNonEmpty(raw.String("difficulty"), defaultDifficulty),
		Image:      resolveImage(raw.String("img_url"), title),
		Score:      score,
	}
}

func matchScore(raw models.RawRecipe, title string, targets, weights map[string]float64) int {
	if targets != nil && weights != nil {
		var weightedDiff, totalWeight float64
		for _, n := range scoredNutrients {
			target := targets[n]
			if target == 0 {
				continue
			}
			w := weights[n]
			if w == 0 {
				w = 1
			}
			actual, _ := raw.Float(n)
			weightedDiff += math.Abs(actual-target) / target * w
			totalWeight += w
		}
		if totalWeight > 0 {
			similarity := 1 - weightedDiff/totalWeight
			return clamp(roundHalfUp(similarity*100), minMatch, maxMatch)
		}
	}
	return pseudoScore(raw, title)
}

// pseudoScore yields a value in [80, 97] derived from the title and calories.
func pseudoScore(raw models.RawRecipe, title string) int {
	calories, _ := raw.Float(models.NutrientCalories)
	seed := len(utf16.Encode([]rune(title))) + int(math.Trunc(calories))%10
	return 80 + ((seed%18)+18)%18
}

func recipeID(raw models.RawRecipe) string {
	for _, key := range []string{"Recipe_id", "_id", "id"} {
		if v := raw.String(key); v != "" {
			return v
		}
	}
	return uuid.NewString()
}

func summaryCalories(raw models.RawRecipe) int {
	if v, ok := raw.Float(models.NutrientCalories); ok {
		return roundHalfUp(v)
	}
	if v, ok := raw.Float(models.NutrientEnergy); ok {
		return roundHalfUp(v)
	}
	return defaultCalories
}

// MapRecipeDetail builds the full recipe view from a catalog record and its
// ingredient phrases.
func MapRecipeDetail(raw models.RawRecipe, ingredients []string) models.RecipeDetail {
	title := raw.String("Recipe_title")
	region := raw.String("Region")
	continent := raw.String("Continent")

	processes := raw.List("Processes")
	utensils := raw.List("Utensils")
	if processes == nil {
		processes = []string{}
	}
	if utensils == nil {
		utensils = []string{}
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	difficulty := "Easy"
	if len(processes) > 10 {
		difficulty = "Medium"
	}

	calories := 0
	if v, ok := raw.Float(models.NutrientCalories); ok {
		calories = roundHalfUp(v)
	}

	servings := 1
	if v, ok := raw.Float("servings"); ok {
		servings = int(math.Trunc(v))
	}

	tags := make([]string, 0, 3)
	for _, t := range []string{region, continent} {
		if t != "" {
			tags = append(tags, t)
		}
	}
	if isVegan(raw) {
		tags = append(tags, "Vegan")
	}

	imageTitle := title
	if imageTitle == "" {
		imageTitle = "Recipe"
	}

	return models.RecipeDetail{
		ID:    raw.String("Recipe_id"),
		Title: title,
		Description: fmt.Sprintf("A delicious %s dish from the %s continent. Prepared using %d unique processes and %d utensils.",
			region, continent, len(processes), len(utensils)),
		Calories:   calories,
		PrepTime:   prepTime(raw),
		Servings:   servings,
		Difficulty: difficulty,
		Rating:     detailRating,
		Reviews:    detailReviews,
		Tags:       tags,
		Macros: models.Macros{
			Protein: gramsOrNA(raw, models.NutrientProtein),
			Carbs:   gramsOrNA(raw, models.NutrientCarbs),
			Fats:    gramsOrNA(raw, models.NutrientFat),
		},
		Image:       resolveImage(raw.String("img_url"), imageTitle),
		Ingredients: ingredients,
		Processes:   processes,
		Utensils:    utensils,
	}
}

// prepTime prefers a non-zero prep_time and falls back to total_time.
func prepTime(raw models.RawRecipe) string {
	if p := raw.String("prep_time"); p != "" && p != "0" {
		return p + " min"
	}
	if t := raw.String("total_time"); t != "" {
		return t + " min"
	}
	return "N/A"
}

func gramsOrNA(raw models.RawRecipe, key string) string {
	v, ok := raw.Float(key)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%dg", roundHalfUp(v))
}

func isVegan(raw models.RawRecipe) bool {
	switch v := raw["vegan"].(type) {
	case string:
		return v == "1.0"
	case float64:
		return v == 1
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

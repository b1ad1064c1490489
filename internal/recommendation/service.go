// Package recommendation ranks catalog recipes against a user's nutrient
// targets.
package recommendation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"flavourfit/internal/foodoscope"
	"flavourfit/internal/logger"
	"flavourfit/internal/models"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidCategory = errors.New("invalid nutrient type")

// Category is a nutrient dimension with its own catalog endpoint.
type Category string

const (
	Calories Category = "calories"
	Energy   Category = "energy"
	Carbs    Category = "carbs"
	Protein  Category = "protein"
)

// Categories in the order their errors are reported.
var Categories = []Category{Calories, Energy, Carbs, Protein}

const (
	categoryLimit = 10
	overviewLimit = 6
	mergedLimit   = 50
)

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Categories, c) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// CategoryURL builds the catalog URL for c from its nutrient range. The
// bounds are widened to whole numbers. ok is false when ranges has no entry
// for the category.
func CategoryURL(baseURL string, c Category, ranges map[string]models.NutrientRange) (string, bool) {
	switch c {
	case Calories:
		r, ok := ranges[models.NutrientCalories]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s/recipes-calories/calories?minCalories=%s&maxCalories=%s&limit=10",
			baseURL, floor(r.Min), ceil(r.Max)), true
	case Energy:
		r, ok := ranges[models.NutrientEnergy]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s/byenergy/energy?minEnergy=%s&maxEnergy=%s&page=1&limit=20",
			baseURL, floor(r.Min), ceil(r.Max)), true
	case Carbs:
		r, ok := ranges[models.NutrientCarbs]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s/recipe-carbo/recipes-by-carbs?minCarbs=%s&maxCarbs=%s&page=1&limit=10",
			baseURL, floor(r.Min), ceil(r.Max)), true
	case Protein:
		r, ok := ranges[models.NutrientProtein]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s/protein/protein-range?min=%s&max=%s&page=1&limit=10",
			baseURL, floor(r.Min), ceil(r.Max)), true
	default:
		return "", false
	}
}

func floor(v float64) string {
	return fmt.Sprintf("%.0f", math.Floor(v))
}

func ceil(v float64) string {
	return fmt.Sprintf("%.0f", math.Ceil(v))
}

// RangeProvider resolves a user's nutrient targets.
type RangeProvider interface {
	GetNutrientRanges(ctx context.Context, clerkID string) models.NutrientRangeSet
}

// RecipeFetcher loads a recipe list from a catalog URL.
type RecipeFetcher interface {
	FetchRecipes(ctx context.Context, url string) foodoscope.FetchResult
}

// CategoryResult is one ranked category. Error carries the user-facing
// upstream message, if any.
type CategoryResult struct {
	Recipes []models.RecipeSummary `json:"recipes"`
	Error   string                 `json:"error,omitempty"`
}

// Overview holds the top recipes of every category.
type Overview struct {
	Calories []models.RecipeSummary `json:"calories"`
	Energy   []models.RecipeSummary `json:"energy"`
	Carbs    []models.RecipeSummary `json:"carbs"`
	Protein  []models.RecipeSummary `json:"protein"`
	Error    string                 `json:"error,omitempty"`
}

// Category returns the list stored for c.
func (o *Overview) Category(c Category) []models.RecipeSummary {
	switch c {
	case Calories:
		return o.Calories
	case Energy:
		return o.Energy
	case Carbs:
		return o.Carbs
	case Protein:
		return o.Protein
	}
	return nil
}

func (o *Overview) set(c Category, recipes []models.RecipeSummary) {
	switch c {
	case Calories:
		o.Calories = recipes
	case Energy:
		o.Energy = recipes
	case Carbs:
		o.Carbs = recipes
	case Protein:
		o.Protein = recipes
	}
}

type Service struct {
	baseURL string
	ranges  RangeProvider
	fetcher RecipeFetcher
	log     *logger.Logger
}

func NewService(baseURL string, ranges RangeProvider, fetcher RecipeFetcher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		ranges:  ranges,
		fetcher: fetcher,
		log:     log,
	}
}

// RecommendCategory ranks the recipes of one category for the user and
// keeps the best ten.
func (s *Service) RecommendCategory(ctx context.Context, clerkID, category string) (CategoryResult, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return CategoryResult{}, err
	}

	set := s.ranges.GetNutrientRanges(ctx, clerkID)
	return s.runCategory(ctx, c, set, categoryLimit), nil
}

// RecommendAll ranks every category concurrently, keeping six per category.
// Failed categories come back empty; the reported error is the last one in
// Categories order.
func (s *Service) RecommendAll(ctx context.Context, clerkID string) Overview {
	set := s.ranges.GetNutrientRanges(ctx, clerkID)
	results := s.runAll(ctx, set, overviewLimit)

	var out Overview
	for i, c := range Categories {
		out.set(c, results[i].Recipes)
		if results[i].Error != "" {
			out.Error = results[i].Error
		}
	}
	return out
}

// RecommendMerged ranks every category and merges them into one list.
func (s *Service) RecommendMerged(ctx context.Context, clerkID string) CategoryResult {
	set := s.ranges.GetNutrientRanges(ctx, clerkID)
	results := s.runAll(ctx, set, categoryLimit)

	var out CategoryResult
	lists := make([][]models.RecipeSummary, 0, len(results))
	for _, r := range results {
		lists = append(lists, r.Recipes)
		if r.Error != "" {
			out.Error = r.Error
		}
	}
	out.Recipes = Merge(lists...)
	return out
}

// runAll runs one pipeline per category. A failing category never cancels
// the others.
func (s *Service) runAll(ctx context.Context, set models.NutrientRangeSet, limit int) []CategoryResult {
	results := make([]CategoryResult, len(Categories))

	var g errgroup.Group
	for i, c := range Categories {
		g.Go(func() error {
			results[i] = s.runCategory(ctx, c, set, limit)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) runCategory(ctx context.Context, c Category, set models.NutrientRangeSet, limit int) CategoryResult {
	url, ok := CategoryURL(s.baseURL, c, set.NutrientRanges)
	if !ok {
		s.log.Debug("no nutrient range for category", "category", string(c))
		return CategoryResult{Recipes: []models.RecipeSummary{}}
	}

	res := s.fetcher.FetchRecipes(ctx, url)
	if res.Error != "" {
		s.log.Warn("category fetch failed", "category", string(c), "error", res.Error)
	}

	recipes := make([]models.RecipeSummary, 0, len(res.Recipes))
	for _, raw := range res.Recipes {
		recipes = append(recipes, MapRecipe(raw, set.TargetNutrients, set.Weights))
	}
	sortByMatch(recipes)
	if len(recipes) > limit {
		recipes = recipes[:limit]
	}

	return CategoryResult{Recipes: recipes, Error: res.Error}
}

// Merge concatenates lists, keeps one entry per id (the last one seen, at the
// position of the first), ranks by match and keeps the best fifty.
func Merge(lists ...[]models.RecipeSummary) []models.RecipeSummary {
	index := make(map[string]int)
	out := make([]models.RecipeSummary, 0)
	for _, list := range lists {
		for _, r := range list {
			if i, seen := index[r.ID]; seen {
				out[i] = r
				continue
			}
			index[r.ID] = len(out)
			out = append(out, r)
		}
	}

	sortByMatch(out)
	if len(out) > mergedLimit {
		out = out[:mergedLimit]
	}
	return out
}

func sortByMatch(recipes []models.RecipeSummary) {
	slices.SortStableFunc(recipes, func(a, b models.RecipeSummary) int {
		return matchValue(b) - matchValue(a)
	})
}

// matchValue reads the score, falling back to the "NN%" text for summaries
// that were decoded from JSON.
func matchValue(r models.RecipeSummary) int {
	if r.Score != 0 {
		return r.Score
	}
	n, err := strconv.Atoi(strings.TrimSuffix(r.Match, "%"))
	if err != nil {
		return 0
	}
	return n
}

package utils

import (
	"context"
	"fmt"
	mathrand "math/rand"

	"flavourfit/internal/models"
	"flavourfit/internal/repository"
)

const DefaultNumProfiles = 25

var (
	seedGenders    = []string{"male", "female", "other"}
	seedCuisines   = []string{"Indian", "Italian", "Mexican", "Chinese", "Thai", "Mediterranean", "Japanese"}
	seedConditions = []string{"Diabetes", "Hypertension", "PCOS", "Thyroid"}
	seedAllergies  = []string{"Peanuts", "Dairy", "Gluten", "Shellfish"}
)

// DemoClerkID is the identity id used for the i-th seeded profile.
func DemoClerkID(prefix string, i int) string {
	return fmt.Sprintf("%s_%04d", prefix, i)
}

// DemoPreferences builds a plausible, valid onboarding answer set.
func DemoPreferences(r *mathrand.Rand) models.Preferences {
	prefs := models.Preferences{
		Age:                float64(18 + r.Intn(50)),
		Gender:             pick(r, seedGenders),
		Height:             float64(150 + r.Intn(45)),
		Weight:             float64(45+r.Intn(60)) + 0.5*float64(r.Intn(2)),
		ActivityLevel:      pick(r, models.ActivityLevels),
		PrimaryGoal:        pick(r, models.PrimaryGoals),
		MedicalHistory:     sample(r, seedConditions, r.Intn(2)),
		Allergies:          sample(r, seedAllergies, r.Intn(3)),
		DietaryPreference:  pick(r, models.DietaryPreferences),
		PreviousDietRating: pick(r, models.DietRatings),
		Alcohol:            pick(r, models.AlcoholFrequencies),
		Cuisines:           sample(r, seedCuisines, 1+r.Intn(3)),
		FlavorPreferences: models.FlavorPreferences{
			SpiceLevel: 1 + r.Intn(5),
			Sweetness:  1 + r.Intn(5),
		},
		MacroPreferences: models.MacroPreferences{
			Protein: 1 + r.Intn(5),
			Carbs:   1 + r.Intn(5),
			Fats:    1 + r.Intn(5),
		},
		WakeUpTime:  fmt.Sprintf("%02d:00", 5+r.Intn(4)),
		SleepTime:   fmt.Sprintf("%02d:30", 21+r.Intn(3)),
		MealsPerDay: pick(r, models.MealsPerDayOptions),
		MealTimes: models.MealTimes{
			Breakfast: "08:00",
			Lunch:     "13:00",
			Dinner:    "20:00",
		},
	}
	prefs.Normalize()
	return prefs
}

// SeedProfiles upserts n demo profiles and returns how many were written.
func SeedProfiles(ctx context.Context, repo repository.UserProfileRepository, n int, prefix string, seed int64) (int, error) {
	r := mathrand.New(mathrand.NewSource(seed))
	written := 0
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		clerkID := DemoClerkID(prefix, i)
		email := fmt.Sprintf("%s@demo.flavourfit.local", clerkID)
		if _, err := repo.Upsert(ctx, clerkID, email, DemoPreferences(r)); err != nil {
			return written, fmt.Errorf("seed %s: %w", clerkID, err)
		}
		written++
	}
	return written, nil
}

func pick(r *mathrand.Rand, from []string) string {
	return from[r.Intn(len(from))]
}

func sample(r *mathrand.Rand, from []string, n int) []string {
	out := make([]string, 0, n)
	for _, i := range r.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}

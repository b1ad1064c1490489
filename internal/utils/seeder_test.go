package utils

import (
	"context"
	"errors"
	mathrand "math/rand"
	"testing"

	"flavourfit/internal/mocks"
	"flavourfit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDemoPreferencesAreValid(t *testing.T) {
	r := mathrand.New(mathrand.NewSource(7))
	for i := 0; i < 200; i++ {
		prefs := DemoPreferences(r)
		require.NoError(t, prefs.Validate(), "iteration %d", i)
		assert.NotNil(t, prefs.Allergies)
		assert.GreaterOrEqual(t, prefs.MacroPreferences.Protein, 1)
		assert.LessOrEqual(t, prefs.MacroPreferences.Protein, 5)
	}
}

func TestSeedProfiles(t *testing.T) {
	repo := new(mocks.MockUserProfileRepository)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("models.Preferences")).
		Return(&models.UserProfile{}, nil).Times(3)

	n, err := SeedProfiles(context.Background(), repo, 3, "demo", 1)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	repo.AssertCalled(t, "Upsert", mock.Anything, "demo_0001", "demo_0001@demo.flavourfit.local", mock.Anything)
	repo.AssertCalled(t, "Upsert", mock.Anything, "demo_0003", "demo_0003@demo.flavourfit.local", mock.Anything)
	repo.AssertExpectations(t)
}

func TestSeedProfilesStopsOnError(t *testing.T) {
	repo := new(mocks.MockUserProfileRepository)
	repo.On("Upsert", mock.Anything, "demo_0001", mock.Anything, mock.Anything).Return(&models.UserProfile{}, nil)
	repo.On("Upsert", mock.Anything, "demo_0002", mock.Anything, mock.Anything).Return(nil, errors.New("duplicate key"))

	n, err := SeedProfiles(context.Background(), repo, 5, "demo", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "demo_0002")
	assert.Equal(t, 1, n)
}

func TestSeedProfilesHonoursCancellation(t *testing.T) {
	repo := new(mocks.MockUserProfileRepository)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := SeedProfiles(ctx, repo, 5, "demo", 1)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

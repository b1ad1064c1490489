package mocks

import (
	"context"

	"flavourfit/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.UserProfile, error) {
	args := m.Called(ctx, clerkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) Upsert(ctx context.Context, clerkID, email string, prefs models.Preferences) (*models.UserProfile, error) {
	args := m.Called(ctx, clerkID, email, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

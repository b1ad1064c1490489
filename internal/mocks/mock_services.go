package mocks

import (
	"context"

	"flavourfit/internal/foodoscope"
	"flavourfit/internal/recommendation"

	"github.com/stretchr/testify/mock"
)

type MockRecipeCatalog struct {
	mock.Mock
}

func (m *MockRecipeCatalog) FetchRecipes(ctx context.Context, url string) foodoscope.FetchResult {
	args := m.Called(ctx, url)
	return args.Get(0).(foodoscope.FetchResult)
}

func (m *MockRecipeCatalog) RecipeOfTheDayID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRecipeCatalog) RecipeDetail(ctx context.Context, id string) (*foodoscope.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*foodoscope.Detail), args.Error(1)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) RecommendCategory(ctx context.Context, clerkID, category string) (recommendation.CategoryResult, error) {
	args := m.Called(ctx, clerkID, category)
	return args.Get(0).(recommendation.CategoryResult), args.Error(1)
}

func (m *MockRecommender) RecommendAll(ctx context.Context, clerkID string) recommendation.Overview {
	args := m.Called(ctx, clerkID)
	return args.Get(0).(recommendation.Overview)
}

func (m *MockRecommender) RecommendMerged(ctx context.Context, clerkID string) recommendation.CategoryResult {
	args := m.Called(ctx, clerkID)
	return args.Get(0).(recommendation.CategoryResult)
}

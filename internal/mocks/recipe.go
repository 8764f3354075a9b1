package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipp/backend/internal/filter"
	"github.com/pageza/recipp/backend/internal/model"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func recipes(args mock.Arguments) ([]model.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return recipes(m.Called(ctx))
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, f *filter.Filter, limit int) ([]model.Recipe, error) {
	return recipes(m.Called(ctx, f, limit))
}

// SearchByTitle mocks the SearchByTitle method
func (m *MockRecipeService) SearchByTitle(ctx context.Context, title string, limit int) ([]model.Recipe, error) {
	return recipes(m.Called(ctx, title, limit))
}

// RandomRecipes mocks the RandomRecipes method
func (m *MockRecipeService) RandomRecipes(ctx context.Context, f *filter.Filter, n int) ([]model.Recipe, error) {
	return recipes(m.Called(ctx, f, n))
}

// SimilarRecipes mocks the SimilarRecipes method
func (m *MockRecipeService) SimilarRecipes(ctx context.Context, id uint, limit int) ([]model.Recipe, error) {
	return recipes(m.Called(ctx, id, limit))
}

// StarRecipe mocks the StarRecipe method
func (m *MockRecipeService) StarRecipe(ctx context.Context, id uint) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

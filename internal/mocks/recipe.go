package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

var _ service.IRecipeService = (*MockRecipeService)(nil)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func recipeResult(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func recipeList(args mock.Arguments) ([]*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

// Create mocks the Create method
func (m *MockRecipeService) Create(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, req))
}

// FindAll mocks the FindAll method
func (m *MockRecipeService) FindAll(ctx context.Context) ([]*models.Recipe, error) {
	return recipeList(m.Called(ctx))
}

// FindOne mocks the FindOne method
func (m *MockRecipeService) FindOne(ctx context.Context, id string) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, id))
}

// Update mocks the Update method
func (m *MockRecipeService) Update(ctx context.Context, id string, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, id, req))
}

// Remove mocks the Remove method
func (m *MockRecipeService) Remove(ctx context.Context, id string) (*models.Recipe, error) {
	return recipeResult(m.Called(ctx, id))
}

// SearchByIngredients mocks the SearchByIngredients method
func (m *MockRecipeService) SearchByIngredients(ctx context.Context, ingredients string, mode string) ([]*models.Recipe, error) {
	return recipeList(m.Called(ctx, ingredients, mode))
}

// SearchByMaxCalories mocks the SearchByMaxCalories method
func (m *MockRecipeService) SearchByMaxCalories(ctx context.Context, max float64) ([]*models.Recipe, error) {
	return recipeList(m.Called(ctx, max))
}

// SearchByCaloriesRange mocks the SearchByCaloriesRange method
func (m *MockRecipeService) SearchByCaloriesRange(ctx context.Context, min, max float64) ([]*models.Recipe, error) {
	return recipeList(m.Called(ctx, min, max))
}

// FindByUser mocks the FindByUser method
func (m *MockRecipeService) FindByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	return recipeList(m.Called(ctx, userID))
}

// SearchByCategories mocks the SearchByCategories method
func (m *MockRecipeService) SearchByCategories(ctx context.Context, categories string) ([]*models.Recipe, error) {
	return recipeList(m.Called(ctx, categories))
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

var _ service.IIngredientService = (*MockIngredientService)(nil)

// MockIngredientService is a mock implementation of the ingredient service
type MockIngredientService struct {
	mock.Mock
}

func ingredientResult(args mock.Arguments) (*models.Ingredient, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ingredient), args.Error(1)
}

func ingredientList(args mock.Arguments) ([]*models.Ingredient, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ingredient), args.Error(1)
}

// Create mocks the Create method
func (m *MockIngredientService) Create(ctx context.Context, req *types.CreateIngredientRequest) (*models.Ingredient, error) {
	return ingredientResult(m.Called(ctx, req))
}

// List mocks the List method
func (m *MockIngredientService) List(ctx context.Context) ([]*models.Ingredient, error) {
	return ingredientList(m.Called(ctx))
}

// GetByID mocks the GetByID method
func (m *MockIngredientService) GetByID(ctx context.Context, id string) (*models.Ingredient, error) {
	return ingredientResult(m.Called(ctx, id))
}

// FindByName mocks the FindByName method
func (m *MockIngredientService) FindByName(ctx context.Context, name string) (*models.Ingredient, error) {
	return ingredientResult(m.Called(ctx, name))
}

// Update mocks the Update method
func (m *MockIngredientService) Update(ctx context.Context, id string, req *types.UpdateIngredientRequest) (*models.Ingredient, error) {
	return ingredientResult(m.Called(ctx, id, req))
}

// Remove mocks the Remove method
func (m *MockIngredientService) Remove(ctx context.Context, id string) (*types.MessageResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MessageResponse), args.Error(1)
}

// BulkCreate mocks the BulkCreate method
func (m *MockIngredientService) BulkCreate(ctx context.Context, reqs []types.CreateIngredientRequest) ([]*models.Ingredient, error) {
	return ingredientList(m.Called(ctx, reqs))
}

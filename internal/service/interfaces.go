package service

import (
	"context"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// IIngredientService defines the ingredient store operations
type IIngredientService interface {
	Create(ctx context.Context, req *types.CreateIngredientRequest) (*models.Ingredient, error)
	List(ctx context.Context) ([]*models.Ingredient, error)
	GetByID(ctx context.Context, id string) (*models.Ingredient, error)
	FindByName(ctx context.Context, name string) (*models.Ingredient, error)
	Update(ctx context.Context, id string, req *types.UpdateIngredientRequest) (*models.Ingredient, error)
	Remove(ctx context.Context, id string) (*types.MessageResponse, error)
	BulkCreate(ctx context.Context, reqs []types.CreateIngredientRequest) ([]*models.Ingredient, error)
}

// IRecipeService defines the recipe store and query operations
type IRecipeService interface {
	Create(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error)
	FindAll(ctx context.Context) ([]*models.Recipe, error)
	FindOne(ctx context.Context, id string) (*models.Recipe, error)
	Update(ctx context.Context, id string, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	Remove(ctx context.Context, id string) (*models.Recipe, error)
	SearchByIngredients(ctx context.Context, ingredients string, mode string) ([]*models.Recipe, error)
	SearchByMaxCalories(ctx context.Context, max float64) ([]*models.Recipe, error)
	SearchByCaloriesRange(ctx context.Context, min, max float64) ([]*models.Recipe, error)
	FindByUser(ctx context.Context, userID string) ([]*models.Recipe, error)
	SearchByCategories(ctx context.Context, categories string) ([]*models.Recipe, error)
}

// IngredientLookup is the part of the ingredient store the recipe store
// needs to resolve references.
type IngredientLookup interface {
	GetByID(ctx context.Context, id string) (*models.Ingredient, error)
	FindByName(ctx context.Context, name string) (*models.Ingredient, error)
}

package types

import (
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

// CreateIngredientRequest is the payload of create_ingredient and each entry
// of populate_ingredients.
type CreateIngredientRequest struct {
	Name            string   `json:"name" binding:"required"`
	Tags            []string `json:"tags"`
	Category        string   `json:"category"`
	Unit            string   `json:"unit"`
	CaloriesPerUnit *float64 `json:"caloriesPerUnit" binding:"omitempty,gte=0"`
}

// UpdateIngredientRequest carries a partial ingredient update. Nil fields are
// left untouched.
type UpdateIngredientRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=1"`
	Tags            *[]string `json:"tags"`
	Category        *string   `json:"category"`
	Unit            *string   `json:"unit"`
	CaloriesPerUnit *float64  `json:"caloriesPerUnit" binding:"omitempty,gte=0"`
}

// CreateRecipeRequest is the payload of create_recipe.
type CreateRecipeRequest struct {
	UserID       string                  `json:"userId" binding:"required"`
	Title        string                  `json:"title" binding:"required"`
	Categories   []string                `json:"categories"`
	Servings     int                     `json:"servings" binding:"required,gt=0"`
	Instructions models.Steps            `json:"instructions"`
	ImageURL     string                  `json:"imageUrl"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"`
}

// UpdateRecipeRequest carries a partial recipe update. Nil fields are left
// untouched; a non-nil Ingredients replaces the whole list.
type UpdateRecipeRequest struct {
	UserID       *string                  `json:"userId" binding:"omitempty,min=1"`
	Title        *string                  `json:"title" binding:"omitempty,min=1"`
	Categories   *[]string                `json:"categories"`
	Servings     *int                     `json:"servings" binding:"omitempty,gt=0"`
	Instructions *models.Steps            `json:"instructions"`
	ImageURL     *string                  `json:"imageUrl"`
	Ingredients  *[]RecipeIngredientInput `json:"ingredients"`
}

// SearchByIngredientsRequest is the payload of search_recipes_by_ingredients.
type SearchByIngredientsRequest struct {
	Ingredients string `json:"ingredients"`
	Mode        string `json:"mode"`
}

// CaloriesRangeRequest is the payload of search_recipes_by_calories_range.
type CaloriesRangeRequest struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

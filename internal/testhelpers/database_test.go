package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

func TestSetupSQLiteDB(t *testing.T) {
	db := SetupSQLiteDB(t)

	tomato := CreateTestIngredient(t, db, "  Tomato ", Float(20))
	assert.Equal(t, "Tomato", tomato.Name)
	assert.Equal(t, "tomato", tomato.NameKey)

	recipe := &models.Recipe{
		UserID:   "user-1",
		Title:    "Salad",
		Servings: 2,
		Calories: 40,
		Ingredients: []models.RecipeIngredient{
			{Position: 0, IngredientID: tomato.ID, Quantity: 2},
		},
	}
	require.NoError(t, db.Create(recipe).Error)

	var stored models.Recipe
	require.NoError(t, db.Preload("Ingredients.Ingredient").First(&stored, "id = ?", recipe.ID.String()).Error)
	require.Len(t, stored.Ingredients, 1)
	require.NotNil(t, stored.Ingredients[0].Ingredient)
	assert.Equal(t, "Tomato", stored.Ingredients[0].Ingredient.Name)
	assert.Equal(t, models.JSONBStringArray{}, stored.Categories)
}

func TestSetupSQLiteDBIsolated(t *testing.T) {
	first := SetupSQLiteDB(t)
	second := SetupSQLiteDB(t)

	CreateTestIngredient(t, first, "Basil", nil)

	var count int64
	require.NoError(t, second.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSetupPostgresDB(t *testing.T) {
	db := SetupPostgresDB(t)

	CreateTestIngredient(t, db, "Flour", Float(3.64))

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

package testhelpers

import (
	"encoding/json"
	"testing"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// CreateTestIngredient inserts an ingredient directly into the database
func CreateTestIngredient(t *testing.T, db *gorm.DB, name string, caloriesPerUnit *float64) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{
		Name:            name,
		Tags:            models.JSONBStringArray{},
		CaloriesPerUnit: caloriesPerUnit,
	}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to create test ingredient %q: %v", name, err)
	}
	return ingredient
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a user-owned recipe. Calories is derived from Ingredients.
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       string             `gorm:"size:64;not null;index" json:"userId"`
	Title        string             `gorm:"size:255;not null" json:"title"`
	Categories   JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"categories"`
	CategoryKeys JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"-"`
	Servings     int                `gorm:"not null" json:"servings"`
	Instructions Steps              `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	ImageURL     string             `gorm:"size:512" json:"imageUrl,omitempty"`
	Calories     float64            `gorm:"type:float;not null;default:0;index" json:"calories"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// CategoryKeys normalizes categories for membership lookups: lowercased,
// trimmed, blanks and duplicates dropped.
func CategoryKeys(categories []string) JSONBStringArray {
	keys := JSONBStringArray{}
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		k := strings.ToLower(strings.TrimSpace(c))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// BeforeSave keeps the id and the category keys in step with Categories.
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Categories == nil {
		r.Categories = JSONBStringArray{}
	}
	r.CategoryKeys = CategoryKeys(r.Categories)
	if r.Instructions == nil {
		r.Instructions = Steps{}
	}
	return nil
}

// RecipeIngredient is one line of a recipe's ingredient list. Ingredient is
// only populated when the list is expanded and stays nil for references to
// ingredients deleted after the recipe was written.
type RecipeIngredient struct {
	ID           uint        `gorm:"primarykey" json:"-"`
	RecipeID     uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"-"`
	Position     int         `gorm:"not null" json:"-"`
	IngredientID uuid.UUID   `gorm:"type:varchar(36);not null;index" json:"ingredientId"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Quantity     float64     `gorm:"type:float;not null" json:"quantity"`
	Unit         string      `gorm:"size:50" json:"unit,omitempty"`
}

// AllModels lists every table owned by the services, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
	}
}

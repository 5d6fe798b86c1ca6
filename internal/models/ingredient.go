package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a named food item with an optional per-unit calorie value.
type Ingredient struct {
	ID              uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	NameKey         string           `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Tags            JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Category        string           `gorm:"size:100" json:"category,omitempty"`
	Unit            string           `gorm:"size:50" json:"unit,omitempty"`
	CaloriesPerUnit *float64         `gorm:"type:float" json:"caloriesPerUnit,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// NameKey normalizes an ingredient name for uniqueness checks.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeSave keeps the id and the normalized name in step with Name.
func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.Name = strings.TrimSpace(i.Name)
	i.NameKey = NameKey(i.Name)
	if i.Tags == nil {
		i.Tags = JSONBStringArray{}
	}
	return nil
}

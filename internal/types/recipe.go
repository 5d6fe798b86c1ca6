package types

import (
	"fmt"
	"strings"
)

// RefKind tells how an ingredient reference identifies its ingredient.
type RefKind int

const (
	RefByID RefKind = iota + 1
	RefByName
)

func (k RefKind) String() string {
	switch k {
	case RefByID:
		return "id"
	case RefByName:
		return "name"
	default:
		return "unknown"
	}
}

// IngredientRef points at an ingredient either by identifier or by name.
type IngredientRef struct {
	Kind  RefKind
	Value string
}

func (r IngredientRef) String() string {
	return fmt.Sprintf("%s %q", r.Kind, r.Value)
}

// RecipeIngredientInput is one inbound ingredient line. Exactly one of
// IngredientID or Name identifies the ingredient; IngredientID wins when
// both are present.
type RecipeIngredientInput struct {
	IngredientID string  `json:"ingredientId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

// Ref returns the reference carried by the line.
func (in RecipeIngredientInput) Ref() (IngredientRef, bool) {
	if id := strings.TrimSpace(in.IngredientID); id != "" {
		return IngredientRef{Kind: RefByID, Value: id}, true
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		return IngredientRef{Kind: RefByName, Value: name}, true
	}
	return IngredientRef{}, false
}

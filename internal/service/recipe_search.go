package service

import (
	"context"
	"strings"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

// Ingredient search modes
const (
	MatchAll = "all"
	MatchAny = "any"
)

// SearchByIngredients returns recipes using every (MatchAll) or at least one
// (MatchAny) of the comma separated ingredient ids.
func (s *RecipeService) SearchByIngredients(ctx context.Context, ingredients string, mode string) ([]*models.Recipe, error) {
	raw := splitList(ingredients)
	if len(raw) == 0 {
		return nil, apperr.InvalidInput("at least one ingredient is required")
	}
	switch mode = strings.ToLower(strings.TrimSpace(mode)); mode {
	case "":
		mode = MatchAll
	case MatchAll, MatchAny:
	default:
		return nil, apperr.InvalidInput("mode must be %q or %q", MatchAll, MatchAny)
	}

	ids := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		parsed, ok := parseID(r)
		if !ok {
			return nil, apperr.NotFound("one or more ingredients do not exist")
		}
		id := parsed.String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var found int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
		return nil, err
	}
	if int(found) != len(ids) {
		return nil, apperr.NotFound("one or more ingredients do not exist")
	}

	matching := s.db.Model(&models.RecipeIngredient{}).
		Select("recipe_id").
		Where("ingredient_id IN ?", ids).
		Group("recipe_id")
	if mode == MatchAll {
		matching = matching.Having("COUNT(DISTINCT ingredient_id) = ?", len(ids))
	}

	recipes, err := s.find(ctx, s.expanded(ctx).Where("id IN (?)", matching))
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, apperr.NotFound("no recipe matches the requested ingredients")
	}
	return recipes, nil
}

// SearchByMaxCalories returns recipes with at most max calories
func (s *RecipeService) SearchByMaxCalories(ctx context.Context, max float64) ([]*models.Recipe, error) {
	if max <= 0 {
		return nil, apperr.InvalidInput("maximum calories must be greater than 0")
	}
	recipes, err := s.find(ctx, s.expanded(ctx).Where("calories <= ?", max))
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, apperr.NotFound("no recipes with at most %g calories", max)
	}
	return recipes, nil
}

// SearchByCaloriesRange returns recipes whose calories lie in [min, max]
func (s *RecipeService) SearchByCaloriesRange(ctx context.Context, min, max float64) ([]*models.Recipe, error) {
	if min < 0 || max <= 0 || min > max {
		return nil, apperr.InvalidInput("invalid calorie range [%g, %g]", min, max)
	}
	recipes, err := s.find(ctx, s.expanded(ctx).Where("calories >= ? AND calories <= ?", min, max))
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, apperr.NotFound("no recipes between %g and %g calories", min, max)
	}
	return recipes, nil
}

// FindByUser returns the recipes owned by userID
func (s *RecipeService) FindByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.InvalidInput("userId is required")
	}
	recipes, err := s.find(ctx, s.expanded(ctx).Where("user_id = ?", userID))
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, apperr.NotFound("no recipes for user %s", userID)
	}
	return recipes, nil
}

// SearchByCategories returns recipes tagged with at least one of the comma
// separated categories. Matching ignores case and compares whole categories.
func (s *RecipeService) SearchByCategories(ctx context.Context, categories string) ([]*models.Recipe, error) {
	wanted := splitList(categories)
	keys := models.CategoryKeys(wanted)
	if len(keys) == 0 {
		return nil, apperr.InvalidInput("at least one category is required")
	}

	recipes, err := s.find(ctx, s.expanded(ctx).Where(s.categoryMatch(), []string(keys)))
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, apperr.NotFound("no recipes in categories %s", strings.Join(wanted, ", "))
	}
	return recipes, nil
}

// categoryMatch is a condition true when any element of category_keys is in
// the bound list.
func (s *RecipeService) categoryMatch() string {
	if s.db.Dialector.Name() == "postgres" {
		return "EXISTS (SELECT 1 FROM jsonb_array_elements_text(recipes.category_keys) AS k(value) WHERE k.value IN ?)"
	}
	return "EXISTS (SELECT 1 FROM json_each(recipes.category_keys) AS k WHERE k.value IN ?)"
}

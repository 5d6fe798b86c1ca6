package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db          *gorm.DB
	ingredients IngredientLookup
	images      ImageLinker
	log         *logger.Logger
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance. images may be nil,
// in which case image references are returned as stored.
func NewRecipeService(db *gorm.DB, ingredients IngredientLookup, images ImageLinker, log *logger.Logger) *RecipeService {
	return &RecipeService{
		db:          db,
		ingredients: ingredients,
		images:      images,
		log:         log.With("service", "RecipeService"),
	}
}

// Create resolves every ingredient reference, computes the calories and
// stores the recipe. Nothing is written unless every reference resolves.
func (s *RecipeService) Create(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	if req == nil {
		return nil, apperr.InvalidInput("recipe payload is required")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.InvalidInput("title is required")
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, apperr.InvalidInput("userId is required")
	}
	if len(req.Ingredients) == 0 {
		return nil, apperr.InvalidInput("a recipe must include at least one ingredient")
	}

	lines, calories, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:       userID,
		Title:        title,
		Categories:   normalizeSet(req.Categories),
		Servings:     req.Servings,
		Instructions: normalizeSteps(req.Instructions),
		ImageURL:     strings.TrimSpace(req.ImageURL),
		Calories:     calories,
		Ingredients:  lines,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	s.log.Info("recipe created", "id", recipe.ID, "title", recipe.Title, "calories", recipe.Calories)
	return s.FindOne(ctx, recipe.ID.String())
}

// FindAll returns every recipe with its ingredients expanded. An empty store
// is reported as NotFound.
func (s *RecipeService) FindAll(ctx context.Context) ([]*models.Recipe, error) {
	recipes, err := s.find(ctx, s.expanded(ctx))
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, apperr.NotFound("no recipes registered")
	}
	return recipes, nil
}

// FindOne retrieves a recipe by ID with its ingredients expanded
func (s *RecipeService) FindOne(ctx context.Context, id string) (*models.Recipe, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, apperr.NotFound("recipe not found: %s", id)
	}
	var recipe models.Recipe
	if err := s.expanded(ctx).First(&recipe, "id = ?", parsed.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found: %s", id)
		}
		return nil, err
	}
	s.linkImages(ctx, &recipe)
	return &recipe, nil
}

// Update applies the non-nil fields of req. A new ingredient list is
// resolved like on create and replaces the stored one, and the calories are
// recomputed from it.
func (s *RecipeService) Update(ctx context.Context, id string, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	if req == nil {
		return nil, apperr.InvalidInput("recipe payload is required")
	}
	parsed, ok := parseID(id)
	if !ok {
		return nil, apperr.NotFound("recipe not found: %s", id)
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", parsed.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found: %s", id)
		}
		return nil, err
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var lines []models.RecipeIngredient
	if req.Ingredients != nil {
		if len(*req.Ingredients) == 0 {
			return nil, apperr.InvalidInput("a recipe must include at least one ingredient")
		}
		var calories float64
		var err error
		lines, calories, err = s.resolveIngredients(ctx, *req.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Calories = calories
	}

	if req.UserID != nil {
		userID := strings.TrimSpace(*req.UserID)
		if userID == "" {
			return nil, apperr.InvalidInput("userId must not be empty")
		}
		recipe.UserID = userID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.InvalidInput("title must not be empty")
		}
		recipe.Title = title
	}
	if req.Categories != nil {
		recipe.Categories = normalizeSet(*req.Categories)
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Instructions != nil {
		recipe.Instructions = normalizeSteps(*req.Instructions)
	}
	if req.ImageURL != nil {
		recipe.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&recipe).Error; err != nil {
			return err
		}
		if lines == nil {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID.String()).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].RecipeID = recipe.ID
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("recipe updated", "id", recipe.ID, "title", recipe.Title)
	return s.FindOne(ctx, recipe.ID.String())
}

// Remove deletes a recipe and returns it as it was before deletion
func (s *RecipeService) Remove(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID.String()).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Recipe{}, "id = ?", recipe.ID.String())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("recipe not found: %s", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("recipe deleted", "id", recipe.ID, "title", recipe.Title)
	return recipe, nil
}

// resolveIngredients turns inbound lines into stored lines, in order, and
// returns the calorie total of the resolved list.
func (s *RecipeService) resolveIngredients(ctx context.Context, inputs []types.RecipeIngredientInput) ([]models.RecipeIngredient, float64, error) {
	lines := make([]models.RecipeIngredient, 0, len(inputs))
	portions := make([]Portion, 0, len(inputs))
	for i, in := range inputs {
		ref, ok := in.Ref()
		if !ok {
			return nil, 0, apperr.InvalidInput("ingredient %d: ingredientId or name is required", i)
		}
		if in.Quantity <= 0 {
			return nil, 0, apperr.InvalidInput("ingredient %d: quantity must be greater than 0", i)
		}
		ingredient, err := s.resolve(ctx, ref)
		if err != nil {
			return nil, 0, err
		}
		lines = append(lines, models.RecipeIngredient{
			Position:     i,
			IngredientID: ingredient.ID,
			Quantity:     in.Quantity,
			Unit:         strings.TrimSpace(in.Unit),
		})
		portions = append(portions, Portion{
			Quantity:        in.Quantity,
			CaloriesPerUnit: ingredient.CaloriesPerUnit,
		})
	}
	return lines, CalculateCalories(portions), nil
}

func (s *RecipeService) resolve(ctx context.Context, ref types.IngredientRef) (*models.Ingredient, error) {
	var (
		ingredient *models.Ingredient
		err        error
	)
	switch ref.Kind {
	case types.RefByID:
		ingredient, err = s.ingredients.GetByID(ctx, ref.Value)
	case types.RefByName:
		ingredient, err = s.ingredients.FindByName(ctx, ref.Value)
	default:
		return nil, apperr.InvalidInput("unsupported ingredient reference %s", ref)
	}
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("ingredient not found: %s", ref.Value)
		}
		return nil, err
	}
	return ingredient, nil
}

// expanded preloads each ingredient line, in recipe order, with the
// referenced ingredient.
func (s *RecipeService) expanded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Ingredients.Ingredient")
}

func (s *RecipeService) find(ctx context.Context, query *gorm.DB) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	if err := query.Order("created_at ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	s.linkImages(ctx, recipes...)
	return recipes, nil
}

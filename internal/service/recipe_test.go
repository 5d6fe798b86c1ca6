package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/testhelpers"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

type recipeFixture struct {
	db          *gorm.DB
	ingredients *IngredientService
	recipes     *RecipeService
	tomato      *models.Ingredient
	oil         *models.Ingredient
	salt        *models.Ingredient
}

func setupRecipeService(t *testing.T) *recipeFixture {
	t.Helper()
	db := testhelpers.SetupSQLiteDB(t)
	ingredients := NewIngredientService(db, logger.Nop())
	f := &recipeFixture{
		db:          db,
		ingredients: ingredients,
		recipes:     NewRecipeService(db, ingredients, nil, logger.Nop()),
	}
	f.tomato = testhelpers.CreateTestIngredient(t, db, "Tomato", float(20))
	f.oil = testhelpers.CreateTestIngredient(t, db, "Olive Oil", float(884))
	f.salt = testhelpers.CreateTestIngredient(t, db, "Salt", nil)
	return f
}

func (f *recipeFixture) create(t *testing.T, req *types.CreateRecipeRequest) *models.Recipe {
	t.Helper()
	recipe, err := f.recipes.Create(context.Background(), req)
	require.NoError(t, err)
	return recipe
}

func saladRequest(f *recipeFixture) *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		UserID:       "user-1",
		Title:        " Tomato Salad ",
		Categories:   []string{"Salad", "Vegan", "Salad"},
		Servings:     2,
		Instructions: models.Steps{"Slice the tomatoes", "Dress with oil"},
		Ingredients: []types.RecipeIngredientInput{
			{IngredientID: f.tomato.ID.String(), Quantity: 2, Unit: "piece"},
			{Name: "olive oil", Quantity: 1, Unit: "tbsp"},
			{Name: "SALT", Quantity: 0.5},
		},
	}
}

func TestRecipeCreate(t *testing.T) {
	f := setupRecipeService(t)

	recipe := f.create(t, saladRequest(f))

	assert.NotEqual(t, uuid.Nil, recipe.ID)
	assert.Equal(t, "Tomato Salad", recipe.Title)
	assert.Equal(t, "user-1", recipe.UserID)
	assert.Equal(t, models.JSONBStringArray{"Salad", "Vegan"}, recipe.Categories)
	assert.Equal(t, models.Steps{"Slice the tomatoes", "Dress with oil"}, recipe.Instructions)
	assert.InDelta(t, 2*20+1*884, recipe.Calories, 1e-9)

	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, f.tomato.ID, recipe.Ingredients[0].IngredientID)
	assert.Equal(t, f.oil.ID, recipe.Ingredients[1].IngredientID)
	assert.Equal(t, f.salt.ID, recipe.Ingredients[2].IngredientID)
	assert.Equal(t, "piece", recipe.Ingredients[0].Unit)
	require.NotNil(t, recipe.Ingredients[1].Ingredient)
	assert.Equal(t, "Olive Oil", recipe.Ingredients[1].Ingredient.Name)
}

func TestRecipeCreateSingleStringInstructions(t *testing.T) {
	f := setupRecipeService(t)

	req := saladRequest(f)
	req.Instructions = models.Steps{"Mix everything."}
	recipe := f.create(t, req)
	assert.Equal(t, models.Steps{"Mix everything."}, recipe.Instructions)
}

func TestRecipeCreateUnknownIngredient(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	req := saladRequest(f)
	req.Ingredients = append(req.Ingredients, types.RecipeIngredientInput{Name: "Unicorn Dust", Quantity: 1})
	_, err := f.recipes.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, err.Error(), "Unicorn Dust")

	req = saladRequest(f)
	missing := uuid.NewString()
	req.Ingredients[0].IngredientID = missing
	_, err = f.recipes.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, err.Error(), missing)

	var count int64
	require.NoError(t, f.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count, "no recipe may be written when a reference fails")
	require.NoError(t, f.db.Model(&models.RecipeIngredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeCreateInvalid(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*types.CreateRecipeRequest)
	}{
		{name: "missing title", mutate: func(r *types.CreateRecipeRequest) { r.Title = "" }},
		{name: "blank title", mutate: func(r *types.CreateRecipeRequest) { r.Title = "  " }},
		{name: "missing user", mutate: func(r *types.CreateRecipeRequest) { r.UserID = "" }},
		{name: "zero servings", mutate: func(r *types.CreateRecipeRequest) { r.Servings = 0 }},
		{name: "no ingredients", mutate: func(r *types.CreateRecipeRequest) { r.Ingredients = nil }},
		{name: "zero quantity", mutate: func(r *types.CreateRecipeRequest) { r.Ingredients[0].Quantity = 0 }},
		{name: "reference without id or name", mutate: func(r *types.CreateRecipeRequest) {
			r.Ingredients[0].IngredientID = ""
			r.Ingredients[0].Name = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := saladRequest(f)
			tt.mutate(req)
			_, err := f.recipes.Create(ctx, req)
			require.Error(t, err)
			assert.True(t, apperr.IsInvalidInput(err), "got %v", err)
		})
	}
}

func TestRecipeFindAll(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	_, err := f.recipes.FindAll(ctx)
	assert.True(t, apperr.IsNotFound(err))

	first := f.create(t, saladRequest(f))
	req := saladRequest(f)
	req.Title = "Salted Tomatoes"
	second := f.create(t, req)

	recipes, err := f.recipes.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	ids := []uuid.UUID{recipes[0].ID, recipes[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
	for _, r := range recipes {
		require.Len(t, r.Ingredients, 3)
		assert.NotNil(t, r.Ingredients[0].Ingredient)
	}
}

func TestRecipeFindOne(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	created := f.create(t, saladRequest(f))

	found, err := f.recipes.FindOne(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)
	assert.Equal(t, created.Calories, found.Calories)

	_, err = f.recipes.FindOne(ctx, uuid.NewString())
	assert.True(t, apperr.IsNotFound(err))
	_, err = f.recipes.FindOne(ctx, "garbage")
	assert.True(t, apperr.IsNotFound(err))
}

func TestRecipeUpdate(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	created := f.create(t, saladRequest(f))

	title := "Roasted Tomatoes"
	servings := 4
	updated, err := f.recipes.Update(ctx, created.ID.String(), &types.UpdateRecipeRequest{
		Title:    &title,
		Servings: &servings,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 4, updated.Servings)
	assert.Equal(t, created.Calories, updated.Calories)
	assert.Len(t, updated.Ingredients, 3)
	assert.Equal(t, created.Categories, updated.Categories)
	assert.Equal(t, created.UserID, updated.UserID)
}

func TestRecipeUpdateIngredientsRecomputesCalories(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	created := f.create(t, saladRequest(f))

	lines := []types.RecipeIngredientInput{
		{Name: "Olive Oil", Quantity: 2},
	}
	updated, err := f.recipes.Update(ctx, created.ID.String(), &types.UpdateRecipeRequest{Ingredients: &lines})
	require.NoError(t, err)
	assert.InDelta(t, 2*884, updated.Calories, 1e-9)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, f.oil.ID, updated.Ingredients[0].IngredientID)

	var rows int64
	require.NoError(t, f.db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID.String()).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRecipeUpdateErrors(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	created := f.create(t, saladRequest(f))

	title := "Anything"
	_, err := f.recipes.Update(ctx, uuid.NewString(), &types.UpdateRecipeRequest{Title: &title})
	assert.True(t, apperr.IsNotFound(err))

	lines := []types.RecipeIngredientInput{{Name: "Ghost Pepper", Quantity: 1}}
	_, err = f.recipes.Update(ctx, created.ID.String(), &types.UpdateRecipeRequest{Title: &title, Ingredients: &lines})
	assert.True(t, apperr.IsNotFound(err))

	empty := []types.RecipeIngredientInput{}
	_, err = f.recipes.Update(ctx, created.ID.String(), &types.UpdateRecipeRequest{Ingredients: &empty})
	assert.True(t, apperr.IsInvalidInput(err))

	servings := 0
	_, err = f.recipes.Update(ctx, created.ID.String(), &types.UpdateRecipeRequest{Servings: &servings})
	assert.True(t, apperr.IsInvalidInput(err))

	found, err := f.recipes.FindOne(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Tomato Salad", found.Title)
	assert.Len(t, found.Ingredients, 3)
}

func TestRecipeRemove(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	created := f.create(t, saladRequest(f))

	removed, err := f.recipes.Remove(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Len(t, removed.Ingredients, 3)

	_, err = f.recipes.FindOne(ctx, created.ID.String())
	assert.True(t, apperr.IsNotFound(err))

	var rows int64
	require.NoError(t, f.db.Model(&models.RecipeIngredient{}).Count(&rows).Error)
	assert.Zero(t, rows)

	_, err = f.recipes.Remove(ctx, created.ID.String())
	assert.True(t, apperr.IsNotFound(err))
}

func TestRecipeSurvivesIngredientRemoval(t *testing.T) {
	f := setupRecipeService(t)
	ctx := context.Background()

	created := f.create(t, saladRequest(f))

	_, err := f.ingredients.Remove(ctx, f.tomato.ID.String())
	require.NoError(t, err)

	found, err := f.recipes.FindOne(ctx, created.ID.String())
	require.NoError(t, err)
	require.Len(t, found.Ingredients, 3)
	assert.Equal(t, f.tomato.ID, found.Ingredients[0].IngredientID)
	assert.Nil(t, found.Ingredients[0].Ingredient)
	assert.Equal(t, created.Calories, found.Calories)
}

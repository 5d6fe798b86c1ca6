package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/testhelpers"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

type fakePresigner struct {
	keys []string
	err  error
}

func (p *fakePresigner) GeneratePresignedURL(_ context.Context, key string, exp time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.keys = append(p.keys, key)
	return "https://images.example.com/" + key + "?expires=" + exp.String(), nil
}

func TestS3ImageLinker(t *testing.T) {
	p := &fakePresigner{}
	linker := NewS3ImageLinker(p, "recipes", 0)
	ctx := context.Background()

	url, ok, err := linker.Link(ctx, "s3://recipes/salad/cover.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://images.example.com/salad/cover.jpg?expires=15m0s", url)

	for _, ref := range []string{"https://cdn.example.com/x.jpg", "s3://other/x.jpg", "s3://recipes/", "s3://recipes"} {
		_, ok, err := linker.Link(ctx, ref)
		assert.NoError(t, err)
		assert.False(t, ok, ref)
	}
	assert.Equal(t, []string{"salad/cover.jpg"}, p.keys)
}

func TestRecipeImagesArePresigned(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	ingredients := NewIngredientService(db, logger.Nop())
	p := &fakePresigner{}
	recipes := NewRecipeService(db, ingredients, NewS3ImageLinker(p, "recipes", time.Minute), logger.Nop())
	ctx := context.Background()

	testhelpers.CreateTestIngredient(t, db, "Bread", float(2.5))
	created, err := recipes.Create(ctx, &types.CreateRecipeRequest{
		UserID:      "u",
		Title:       "Toast",
		Servings:    1,
		ImageURL:    "s3://recipes/toast.png",
		Ingredients: []types.RecipeIngredientInput{{Name: "bread", Quantity: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/toast.png?expires=1m0s", created.ImageURL)

	// The stored reference is untouched.
	var stored []string
	require.NoError(t, db.Table("recipes").Where("id = ?", created.ID.String()).Pluck("image_url", &stored).Error)
	assert.Equal(t, []string{"s3://recipes/toast.png"}, stored)

	p.err = errors.New("presign failed")
	found, err := recipes.FindOne(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "s3://recipes/toast.png", found.ImageURL)
}

package rpc

import (
	"context"
	"encoding/json"

	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

// Command names
const (
	CmdCreateIngredient      = "create_ingredient"
	CmdGetAllIngredients     = "get_all_ingredients"
	CmdGetIngredientByID     = "get_ingredient_by_id"
	CmdUpdateIngredient      = "update_ingredient"
	CmdDeleteIngredient      = "delete_ingredient"
	CmdPopulateIngredients   = "populate_ingredients"
	CmdCreateRecipe          = "create_recipe"
	CmdFindAllRecipes        = "find_all_recipes"
	CmdFindRecipe            = "find_recipe"
	CmdUpdateRecipe          = "update_recipe"
	CmdRemoveRecipe          = "remove_recipe"
	CmdSearchByIngredients   = "search_recipes_by_ingredients"
	CmdSearchByMaxCalories   = "search_recipes_by_max_calories"
	CmdSearchByCaloriesRange = "search_recipes_by_calories_range"
	CmdFindRecipesByUser     = "find_recipes_by_user"
	CmdSearchByCategories    = "search_recipes_by_categories"
)

// NewServiceDispatcher registers every ingredient and recipe command.
func NewServiceDispatcher(ingredients service.IIngredientService, recipes service.IRecipeService, log *logger.Logger) *Dispatcher {
	d := NewDispatcher(log)
	RegisterIngredientHandlers(d, ingredients)
	RegisterRecipeHandlers(d, recipes)
	return d
}

// RegisterIngredientHandlers binds the ingredient commands to svc
func RegisterIngredientHandlers(d *Dispatcher, svc service.IIngredientService) {
	d.Register(CmdCreateIngredient, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		var req types.CreateIngredientRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return svc.Create(ctx, &req)
	}, "createIngredient")

	d.Register(CmdGetAllIngredients, func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
		return svc.List(ctx)
	}, "find_all_ingredients", "findAllIngredients")

	d.Register(CmdGetIngredientByID, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		id, err := decodeString(data, "id")
		if err != nil {
			return nil, err
		}
		return svc.GetByID(ctx, id)
	}, "find_ingredient", "findOneIngredient")

	d.Register(CmdUpdateIngredient, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		var req types.UpdateIngredientRequest
		id, err := decodeUpdate(data, &req)
		if err != nil {
			return nil, err
		}
		return svc.Update(ctx, id, &req)
	}, "updateIngredient")

	d.Register(CmdDeleteIngredient, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		id, err := decodeString(data, "id")
		if err != nil {
			return nil, err
		}
		return svc.Remove(ctx, id)
	}, "remove_ingredient", "removeIngredient")

	d.Register(CmdPopulateIngredients, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		reqs, err := decodePopulate(data)
		if err != nil {
			return nil, err
		}
		return svc.BulkCreate(ctx, reqs)
	})
}

// RegisterRecipeHandlers binds the recipe commands to svc
func RegisterRecipeHandlers(d *Dispatcher, svc service.IRecipeService) {
	d.Register(CmdCreateRecipe, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		var req types.CreateRecipeRequest
		if err := decodeInto(data, &req); err != nil {
			return nil, err
		}
		return svc.Create(ctx, &req)
	}, "createRecipe")

	d.Register(CmdFindAllRecipes, func(ctx context.Context, _ json.RawMessage) (interface{}, error) {
		return svc.FindAll(ctx)
	}, "findAllRecipes")

	d.Register(CmdFindRecipe, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		id, err := decodeString(data, "id")
		if err != nil {
			return nil, err
		}
		return svc.FindOne(ctx, id)
	}, "findOneRecipe")

	d.Register(CmdUpdateRecipe, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		var req types.UpdateRecipeRequest
		id, err := decodeUpdate(data, &req)
		if err != nil {
			return nil, err
		}
		return svc.Update(ctx, id, &req)
	}, "updateRecipe")

	d.Register(CmdRemoveRecipe, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		id, err := decodeString(data, "id")
		if err != nil {
			return nil, err
		}
		return svc.Remove(ctx, id)
	}, "removeRecipe")

	d.Register(CmdSearchByIngredients, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		req, err := decodeSearch(data)
		if err != nil {
			return nil, err
		}
		return svc.SearchByIngredients(ctx, req.Ingredients, req.Mode)
	})

	d.Register(CmdSearchByMaxCalories, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		max, err := decodeNumber(data, "max")
		if err != nil {
			return nil, err
		}
		return svc.SearchByMaxCalories(ctx, max)
	})

	d.Register(CmdSearchByCaloriesRange, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		min, max, err := decodeRange(data)
		if err != nil {
			return nil, err
		}
		return svc.SearchByCaloriesRange(ctx, min, max)
	})

	d.Register(CmdFindRecipesByUser, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		userID, err := decodeString(data, "userId")
		if err != nil {
			return nil, err
		}
		return svc.FindByUser(ctx, userID)
	})

	d.Register(CmdSearchByCategories, func(ctx context.Context, data json.RawMessage) (interface{}, error) {
		categories, err := decodeList(data, "categories")
		if err != nil {
			return nil, err
		}
		return svc.SearchByCategories(ctx, categories)
	})
}

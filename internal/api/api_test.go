package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
	"github.com/pageza/alchemorsel-recipes/backend/internal/middleware"
	"github.com/pageza/alchemorsel-recipes/backend/internal/mocks"
	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
	"github.com/pageza/alchemorsel-recipes/backend/internal/rpc"
	"github.com/pageza/alchemorsel-recipes/backend/internal/service"
	"github.com/pageza/alchemorsel-recipes/backend/internal/testhelpers"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(d *rpc.Dispatcher, health *HealthHandler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(logger.Nop()))
	SetupAPI(router, health, NewRPCHandler(d))
	return router
}

func post(t *testing.T, router *gin.Engine, cmd string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rpc/"+cmd, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	router := setupTestRouter(rpc.NewDispatcher(logger.Nop()), NewHealthHandler(db, nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","checks":{"database":"ok"}}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupTestRouter(rpc.NewDispatcher(logger.Nop()), NewHealthHandler(nil, nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRPCGatewayMapsErrors(t *testing.T) {
	ingredients := &mocks.MockIngredientService{}
	recipes := &mocks.MockRecipeService{}
	router := setupTestRouter(rpc.NewServiceDispatcher(ingredients, recipes, logger.Nop()), NewHealthHandler(nil, nil))

	recipes.On("FindOne", mock.Anything, "missing").Return(nil, apperr.NotFound("recipe not found: missing"))
	w := post(t, router, rpc.CmdFindRecipe, `"missing"`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":404,"message":"recipe not found: missing"}`, w.Body.String())

	ingredients.On("Create", mock.Anything, mock.Anything).Return(nil, apperr.Conflict("ingredient \"Salt\" already exists"))
	w = post(t, router, rpc.CmdCreateIngredient, `{"name":"Salt"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(t, router, rpc.CmdSearchByCaloriesRange, `{"min":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, router, "brew_coffee", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown command")
}

func TestRPCGatewayListsCommands(t *testing.T) {
	router := setupTestRouter(rpc.NewServiceDispatcher(&mocks.MockIngredientService{}, &mocks.MockRecipeService{}, logger.Nop()), NewHealthHandler(nil, nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rpc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Commands []string `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Commands, rpc.CmdCreateRecipe)
	assert.Contains(t, body.Commands, "findOneRecipe")
}

func TestRPCGatewayEndToEnd(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	ingredients := service.NewIngredientService(db, logger.Nop())
	recipes := service.NewRecipeService(db, ingredients, nil, logger.Nop())
	router := setupTestRouter(rpc.NewServiceDispatcher(ingredients, recipes, logger.Nop()), NewHealthHandler(db, nil))

	w := post(t, router, rpc.CmdGetAllIngredients, ``)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = post(t, router, rpc.CmdPopulateIngredients, `[
		{"name":"Flour","unit":"g","caloriesPerUnit":3.64},
		{"name":"Butter","unit":"g","caloriesPerUnit":7.17},
		{"name":"flour"}
	]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var populated []*models.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &populated))
	require.Len(t, populated, 2)

	w = post(t, router, rpc.CmdPopulateIngredients, `[{"name":"BUTTER"}]`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(t, router, rpc.CmdCreateRecipe, `{
		"userId":"baker-1","title":"Shortbread","servings":12,
		"categories":["Dessert","Baking"],
		"instructions":["Cream butter","Add flour","Bake"],
		"ingredients":[
			{"name":"Flour","quantity":300,"unit":"g"},
			{"ingredientId":"`+populated[1].ID.String()+`","quantity":200,"unit":"g"}
		]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var recipe models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.InDelta(t, 300*3.64+200*7.17, recipe.Calories, 1e-6)
	assert.Equal(t, "baker-1", recipe.UserID)

	w = post(t, router, rpc.CmdSearchByIngredients, `{"ingredients":"`+populated[0].ID.String()+","+populated[1].ID.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Shortbread")

	w = post(t, router, rpc.CmdSearchByCategories, `"baking"`)
	require.Equal(t, http.StatusOK, w.Code)

	w = post(t, router, rpc.CmdSearchByMaxCalories, `{"max":100}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(t, router, rpc.CmdUpdateRecipe, `{"id":"`+recipe.ID.String()+`","dto":{"ingredients":[{"name":"flour","quantity":100}]}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.InDelta(t, 364, updated.Calories, 1e-6)

	w = post(t, router, rpc.CmdRemoveRecipe, `"`+recipe.ID.String()+`"`)
	require.Equal(t, http.StatusOK, w.Code)

	w = post(t, router, rpc.CmdFindAllRecipes, ``)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(t, router, rpc.CmdDeleteIngredient, `{"id":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var msg types.MessageResponse
	w = post(t, router, "removeIngredient", `"`+populated[0].ID.String()+`"`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(strings.NewReader(w.Body.String())).Decode(&msg))
	assert.NotEmpty(t, msg.Message)
}

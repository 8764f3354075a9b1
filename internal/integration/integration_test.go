package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipp/backend/config"
	"github.com/pageza/recipp/backend/internal/middleware"
	"github.com/pageza/recipp/backend/internal/model"
	"github.com/pageza/recipp/backend/internal/server"
	"github.com/pageza/recipp/backend/internal/service"
	"github.com/pageza/recipp/backend/internal/testhelpers"
	"github.com/pageza/recipp/backend/internal/types"
)

const pancakesSeed = `[
  {
    "id": 1,
    "title": "Pancakes",
    "cuisine": "American",
    "readyInTime": 25,
    "servingSize": 4,
    "ingredients": [{"name": "flour", "amount": 200, "unit": "g"}, {"name": "egg", "amount": 2}],
    "steps": ["Whisk", "Fry"],
    "diets": ["vegetarian"],
    "nutrition": {
      "calories": {"amount": 200, "unit": "kcal"},
      "fat": {"amount": 8, "unit": "g"},
      "carbs": {"amount": 30, "unit": "g"},
      "protein": {"amount": 6, "unit": "g"}
    }
  }
]`

func newServer(t *testing.T, db *gorm.DB, opts server.Options) *server.Server {
	t.Helper()
	cfg := config.Defaults()
	cfg.Environment = config.Test
	cfg.RateLimitMax = 1000
	return server.New(cfg, db, opts)
}

func request(s *server.Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

// runScenario seeds a single recipe, reads it back, stars it and reseeds.
func runScenario(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	seeds := service.NewSeedReconciler(db)
	s := newServer(t, db, server.Options{Seeds: seeds})

	result, err := seeds.Sync(ctx, strings.NewReader(pancakesSeed))
	require.NoError(t, err)
	assert.Equal(t, service.SyncResult{Inserted: 1}, result)

	w := request(s, http.MethodGet, "/api/recipes/1")
	require.Equal(t, http.StatusOK, w.Code)
	var recipe model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, "Pancakes", recipe.Title)
	assert.Equal(t, []string{"flour", "egg"}, recipe.IngredientNames())

	w = request(s, http.MethodPost, "/api/recipes/1/star")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Recipe starred successfully","starCount":1}`, w.Body.String())

	result, err = seeds.Sync(ctx, strings.NewReader(pancakesSeed))
	require.NoError(t, err)
	assert.Equal(t, service.SyncResult{Unchanged: 1}, result)

	w = request(s, http.MethodGet, "/api/complexSearch?ingredients=egg&diets=vegetarian&maxCalories=200&maxReadyInTime=25")
	require.Equal(t, http.StatusOK, w.Code)
	var found []model.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].StarCount)

	w = request(s, http.MethodGet, "/api/searchByIngredients?ingredients=egg,butter")
	require.Equal(t, http.StatusOK, w.Code)
	var annotated []types.AnnotatedRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &annotated))
	require.Len(t, annotated, 1)
	assert.Equal(t, []string{"Flour"}, annotated[0].MissingIngredients)
	assert.Equal(t, []string{"Butter"}, annotated[0].ExtraIngredients)
}

// starConcurrently fires n star requests at once and returns the final count.
func starConcurrently(t *testing.T, s *server.Server, n int) int {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := request(s, http.MethodPost, "/api/recipes/3/star")
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	var recipe model.Recipe
	w := request(s, http.MethodGet, "/api/recipes/3")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	return recipe.StarCount
}

func TestEndToEnd_SQLite(t *testing.T) {
	runScenario(t, testhelpers.SetupTestDatabase(t))
}

func TestConcurrentStars_SQLite(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	testhelpers.SeedRecipes(t, db)
	s := newServer(t, db, server.Options{})

	assert.Equal(t, 20, starConcurrently(t, s, 20))
}

func TestEndToEnd_Postgres(t *testing.T) {
	runScenario(t, testhelpers.SetupPostgresDatabase(t))
}

func TestSearch_Postgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	testhelpers.SeedRecipes(t, db)
	s := newServer(t, db, server.Options{})

	ids := func(target string) []uint {
		w := request(s, http.MethodGet, target)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var recipes []model.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
		out := make([]uint, len(recipes))
		for i, r := range recipes {
			out[i] = r.ID
		}
		return out
	}

	assert.ElementsMatch(t, []uint{1, 2, 4}, ids("/api/searchByExcludedIngredients?ingredients=nuts"))
	assert.ElementsMatch(t, []uint{1, 3, 4}, ids("/api/searchByNutrients?minCalories=200"))
	assert.ElementsMatch(t, []uint{3, 4}, ids("/api/complexSearch?cuisine=thai&equipment=wok"))
	assert.Empty(t, ids("/api/complexSearch?cuisine=thai,american"))
	assert.ElementsMatch(t, []uint{2}, ids("/api/complexSearch?diets=gluten%20free&excludedCuisine=thai"))
	assert.ElementsMatch(t, []uint{4}, ids("/api/recipes/3/similar"))
	assert.Len(t, ids("/api/recipes/random?amount=3"), 3)

	assert.Equal(t, 20, starConcurrently(t, s, 20))
}

func TestRateLimit_Redis(t *testing.T) {
	url := testhelpers.SetupRedis(t)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	db := testhelpers.SetupTestDatabase(t)
	cfg := config.Defaults()
	cfg.Environment = config.Test
	cfg.RateLimitMax = 3

	// Two instances sharing one Redis share the budget.
	a := server.New(cfg, db, server.Options{Counters: middleware.NewRedisStore(client)})
	b := server.New(cfg, db, server.Options{Counters: middleware.NewRedisStore(client)})

	assert.Equal(t, http.StatusOK, request(a, http.MethodGet, "/api/").Code)
	assert.Equal(t, http.StatusOK, request(b, http.MethodGet, "/api/").Code)
	assert.Equal(t, http.StatusOK, request(a, http.MethodGet, "/api/").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(b, http.MethodGet, "/api/").Code)
}

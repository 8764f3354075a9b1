package model

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func validRecipe() Recipe {
	return Recipe{
		Title: "Pancakes",
		Steps: JSONStringArray{"Mix", "Fry"},
		Ingredients: []Ingredient{
			{"name": "flour", "amount": 200, "unit": "g"},
			{"name": "egg", "amount": 2, "aisle": "Dairy"},
		},
		Nutrition: datatypes.JSONMap{
			"calories": Nutrient(350, "kcal"),
			"fat":      Nutrient(12, "g"),
			"carbs":    Nutrient(48, "g"),
			"protein":  Nutrient(9, "g"),
			"sugar":    Nutrient(6, "g"),
		},
		Equipment: JSONStringArray{"pan"},
	}
}

func TestRecipeValidate(t *testing.T) {
	r := validRecipe()
	assert.NoError(t, r.Validate())

	r.Title = "  "
	assert.Error(t, r.Validate())

	r = validRecipe()
	delete(r.Nutrition, "protein")
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "protein")

	r = validRecipe()
	r.Nutrition["fat"] = map[string]any{"unit": "g"}
	err = r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fat")

	r = validRecipe()
	r.Nutrition["carbs"] = "48g"
	assert.Error(t, r.Validate())

	r = validRecipe()
	r.Ingredients = append(r.Ingredients, Ingredient{"amount": 1})
	assert.Error(t, r.Validate())

	r = validRecipe()
	r.Ingredients = append(r.Ingredients, Ingredient{"name": 42})
	assert.Error(t, r.Validate())

	// Non-numeric ingredient amounts are stored as given.
	r = validRecipe()
	r.Ingredients[0]["amount"] = "1/2"
	assert.NoError(t, r.Validate())
}

func TestNutrientAmount(t *testing.T) {
	r := validRecipe()
	v, ok := r.NutrientAmount("sugar")
	assert.True(t, ok)
	assert.Equal(t, 6.0, v)

	r.Nutrition["fiber"] = map[string]any{"amount": json.Number("2.5")}
	v, ok = r.NutrientAmount("fiber")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	_, ok = r.NutrientAmount("sodium")
	assert.False(t, ok)
}

func TestJSONStringArrayScan(t *testing.T) {
	var a JSONStringArray
	require.NoError(t, a.Scan(`["vegan","gluten free"]`))
	assert.Equal(t, JSONStringArray{"vegan", "gluten free"}, a)

	require.NoError(t, a.Scan([]byte(`["pan"]`)))
	assert.Equal(t, JSONStringArray{"pan"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)

	assert.Error(t, a.Scan(42))
}

func TestJSONStringArrayValue(t *testing.T) {
	v, err := JSONStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = JSONStringArray{"whisk"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["whisk"]`, v)
}

func TestRecipeRoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "model.sqlite")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Recipe{}))

	r := validRecipe()
	r.Diets = nil
	require.NoError(t, db.Create(&r).Error)
	assert.NotZero(t, r.ID)

	var got Recipe
	require.NoError(t, db.First(&got, r.ID).Error)
	assert.Equal(t, "Pancakes", got.Title)
	assert.Equal(t, []string{"flour", "egg"}, got.IngredientNames())
	assert.Equal(t, "Dairy", got.Ingredients[1]["aisle"])
	calories, ok := got.NutrientAmount("calories")
	assert.True(t, ok)
	assert.Equal(t, 350.0, calories)
	_, ok = got.NutrientAmount("sugar")
	assert.True(t, ok)
	assert.NotNil(t, got.Diets)
	assert.Empty(t, got.Diets)
	assert.Equal(t, 0, got.StarCount)
}

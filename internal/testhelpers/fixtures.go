package testhelpers

import (
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/recipp/backend/internal/model"
)

// Nutrition builds the four macro entries.
func Nutrition(calories, fat, carbs, protein float64) datatypes.JSONMap {
	return datatypes.JSONMap{
		"calories": model.Nutrient(calories, "kcal"),
		"fat":      model.Nutrient(fat, "g"),
		"carbs":    model.Nutrient(carbs, "g"),
		"protein":  model.Nutrient(protein, "g"),
	}
}

// SampleRecipes returns a small catalog covering every filterable field.
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		{
			ID:              1,
			Title:           "Pancakes",
			Description:     "Fluffy breakfast pancakes",
			Image:           "images/pancakes.jpg",
			Cuisine:         "American",
			Type:            "Breakfast",
			PreparationTime: 10,
			CookingTime:     15,
			ReadyInTime:     25,
			ServingSize:     4,
			Steps:           model.JSONStringArray{"Whisk the batter", "Fry in butter"},
			Diets:           model.JSONStringArray{"vegetarian"},
			Intolerances:    model.JSONStringArray{"gluten", "dairy"},
			Equipment:       model.JSONStringArray{"frying pan", "whisk"},
			Ingredients: []model.Ingredient{
				{"name": "flour", "amount": 200, "unit": "g"},
				{"name": "egg", "amount": 2},
				{"name": "milk", "amount": 300, "unit": "ml"},
			},
			Nutrition: Nutrition(200, 8, 30, 6),
		},
		{
			ID:              2,
			Title:           "Baba Ganoush",
			Description:     "Smoky eggplant dip",
			Image:           "https://images.example.com/baba.jpg",
			Cuisine:         "Middle Eastern",
			Type:            "Dip",
			PreparationTime: 15,
			CookingTime:     40,
			ReadyInTime:     55,
			ServingSize:     6,
			Steps:           model.JSONStringArray{"Roast the eggplant", "Blend"},
			Diets:           model.JSONStringArray{"vegan", "gluten free"},
			Equipment:       model.JSONStringArray{"oven", "blender"},
			Ingredients: []model.Ingredient{
				{"name": "eggplant", "amount": 2},
				{"name": "tahini", "amount": 3, "unit": "tbsp"},
				{"name": "lemon juice", "amount": 1, "unit": "tbsp"},
			},
			Nutrition: Nutrition(150, 11, 12, 3),
		},
		{
			ID:              3,
			Title:           "Peanut Noodles",
			Description:     "Quick noodles in peanut sauce",
			Cuisine:         "Thai",
			Type:            "Main Course",
			PreparationTime: 20,
			CookingTime:     10,
			ReadyInTime:     30,
			ServingSize:     2,
			Steps:           model.JSONStringArray{"Boil noodles", "Toss with sauce"},
			Intolerances:    model.JSONStringArray{"peanuts"},
			Equipment:       model.JSONStringArray{"wok"},
			Ingredients: []model.Ingredient{
				{"name": "rice noodles", "amount": 250, "unit": "g"},
				{"name": "peanut butter", "amount": 4, "unit": "tbsp"},
				{"name": "walnuts", "amount": 30, "unit": "g"},
			},
			Nutrition: Nutrition(540, 22, 60, 18),
		},
		{
			ID:              4,
			Title:           "Pad Thai",
			Description:     "Stir-fried rice noodles",
			Cuisine:         "Thai",
			Type:            "Main Course",
			PreparationTime: 25,
			CookingTime:     10,
			ReadyInTime:     35,
			ServingSize:     2,
			Steps:           model.JSONStringArray{"Soak noodles", "Stir-fry"},
			Equipment:       model.JSONStringArray{"wok"},
			Ingredients: []model.Ingredient{
				{"name": "rice noodles", "amount": 200, "unit": "g"},
				{"name": "egg", "amount": 2},
				{"name": "tamarind paste", "amount": 2, "unit": "tbsp"},
			},
			Nutrition: Nutrition(480, 16, 58, 20),
		},
	}
}

// SeedRecipes inserts recipes, or SampleRecipes when none are given.
func SeedRecipes(t *testing.T, db *gorm.DB, recipes ...model.Recipe) []model.Recipe {
	t.Helper()
	if len(recipes) == 0 {
		recipes = SampleRecipes()
	}
	if err := db.Create(&recipes).Error; err != nil {
		t.Fatalf("failed to seed recipes: %v", err)
	}
	return recipes
}

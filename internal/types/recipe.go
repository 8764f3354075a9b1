package types

import (
	"github.com/pageza/recipp/backend/internal/model"
)

// ReplacementKey is added to an annotated ingredient that only partially
// matched a requested term; it names that term.
const ReplacementKey = "replacement"

// AnnotatedRecipe is a recipe returned by an any-ingredient search, annotated
// with how its ingredients relate to the requested ones. Ingredients are
// copies of the stored ones with title-cased names.
type AnnotatedRecipe struct {
	model.Recipe
	Ingredients        []model.Ingredient `json:"ingredients"`
	MissingIngredients []string           `json:"missingIngredients"`
	ExtraIngredients   []string           `json:"extraIngredients"`
}

// StarResponse is the body returned after starring a recipe.
type StarResponse struct {
	Message   string `json:"message"`
	StarCount int    `json:"starCount"`
}

// InfoResponse describes the API at its root.
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Message string `json:"message"`
}

// HealthResponse reports service and database health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

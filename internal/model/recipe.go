package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JSONStringArray is a string slice stored as a JSON text column.
type JSONStringArray []string

// Value implements the driver.Valuer interface. The array is written as text
// so SQLite's json_each reads it as JSON rather than a blob.
func (a JSONStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONStringArray: %T", value)
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*a = JSONStringArray{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// GormDataType keeps AutoMigrate from choosing a blob column.
func (JSONStringArray) GormDataType() string {
	return "text"
}

// Macros lists the nutrition entries every recipe must carry.
var Macros = []string{"calories", "fat", "carbs", "protein"}

// Ingredient is one entry of a recipe's ingredient list. Only name is
// required; every other property is stored as given.
type Ingredient map[string]any

// Name returns the ingredient's name, or "" when it is missing or not text.
func (i Ingredient) Name() string {
	name, _ := i["name"].(string)
	return name
}

// Nutrient builds a nutrition entry such as 250 kcal.
func Nutrient(amount float64, unit string) map[string]any {
	return map[string]any{"amount": amount, "unit": unit}
}

// Recipe is the only persisted entity.
type Recipe struct {
	ID              uint                            `gorm:"primaryKey" json:"id"`
	Title           string                          `gorm:"not null" json:"title"`
	Description     string                          `json:"description"`
	Image           string                          `json:"image"`
	PreparationTime int                             `json:"preparationTime"`
	CookingTime     int                             `json:"cookingTime"`
	ReadyInTime     int                             `json:"readyInTime"`
	ServingSize     int                             `json:"servingSize"`
	Cuisine         string                          `json:"cuisine"`
	Type            string                          `json:"type"`
	Steps           JSONStringArray                 `gorm:"not null" json:"steps"`
	Intolerances    JSONStringArray                 `json:"intolerances"`
	Diets           JSONStringArray                 `json:"diets"`
	Ingredients     datatypes.JSONSlice[Ingredient] `gorm:"not null" json:"ingredients"`
	Nutrition       datatypes.JSONMap               `gorm:"not null" json:"nutrition"`
	Equipment       JSONStringArray                 `gorm:"not null" json:"equipment"`
	StarCount       int                             `gorm:"not null;default:0" json:"starCount"`
	CreatedAt       time.Time                       `json:"createdAt"`
	UpdatedAt       time.Time                       `json:"updatedAt"`
}

// TableName pins the table name regardless of naming strategy.
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeSave normalizes absent collections to empty ones so the JSON columns
// always hold arrays.
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	r.Normalize()
	return nil
}

// Normalize replaces nil collections with empty ones.
func (r *Recipe) Normalize() {
	if r.Steps == nil {
		r.Steps = JSONStringArray{}
	}
	if r.Intolerances == nil {
		r.Intolerances = JSONStringArray{}
	}
	if r.Diets == nil {
		r.Diets = JSONStringArray{}
	}
	if r.Equipment == nil {
		r.Equipment = JSONStringArray{}
	}
	if r.Ingredients == nil {
		r.Ingredients = datatypes.JSONSlice[Ingredient]{}
	}
	if r.Nutrition == nil {
		r.Nutrition = datatypes.JSONMap{}
	}
}

// Validate checks the fields the store requires.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("recipe title is required")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name()) == "" {
			return fmt.Errorf("ingredient %d of %q has no name", i, r.Title)
		}
	}
	for _, macro := range Macros {
		if _, ok := r.NutrientAmount(macro); !ok {
			return fmt.Errorf("nutrition of %q must include a valid %s object", r.Title, macro)
		}
	}
	if r.StarCount < 0 {
		return fmt.Errorf("star count of %q cannot be negative", r.Title)
	}
	return nil
}

// IngredientNames returns the ingredient names in list order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name())
	}
	return names
}

// NutrientAmount returns nutrition.<name>.amount when it is a number.
func (r *Recipe) NutrientAmount(name string) (float64, bool) {
	entry, ok := r.Nutrition[name].(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := entry["amount"].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Package filter turns recipe search query parameters into parameterized
// GORM predicates.
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/pageza/recipp/backend/internal/apperrors"
	"github.com/pageza/recipp/backend/internal/model"
	"github.com/pageza/recipp/backend/internal/textfold"
)

// Macros lists the nutrition entries that can be range-filtered, in the order
// their predicates are rendered.
var Macros = model.Macros

func isMacro(name string) bool {
	for _, m := range Macros {
		if m == name {
			return true
		}
	}
	return false
}

// Range is an inclusive numeric interval. A nil end is unbounded.
type Range struct {
	Min *float64
	Max *float64
}

// Filter is the parsed form of the recipe search parameters. The zero value
// matches every recipe.
type Filter struct {
	Title string
	Type  string

	Cuisines         []string
	ExcludedCuisines []string

	Diets        []string
	Intolerances []string
	Equipment    []string

	Ingredients         []string
	MatchAnyIngredient  bool
	ExcludedIngredients []string

	MaxReadyInTime     *int
	MaxCookingTime     *int
	MaxPreparationTime *int
	MinServings        *int
	MaxServings        *int

	Nutrients map[string]Range
}

// SplitTerms splits a comma separated parameter into trimmed, lower-cased
// tokens. Empty tokens are dropped.
func SplitTerms(raw string) []string {
	var terms []string
	for _, part := range strings.Split(raw, ",") {
		term := textfold.Lower(strings.TrimSpace(part))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Parse reads every supported filter parameter from values. A numeric
// parameter that does not parse yields a ValidationError.
func Parse(values url.Values) (*Filter, error) {
	f := &Filter{
		Title:               strings.TrimSpace(values.Get("title")),
		Type:                strings.TrimSpace(values.Get("type")),
		Cuisines:            SplitTerms(values.Get("cuisine")),
		ExcludedCuisines:    SplitTerms(values.Get("excludedCuisine")),
		Diets:               SplitTerms(values.Get("diets")),
		Intolerances:        SplitTerms(values.Get("intolerances")),
		Equipment:           SplitTerms(values.Get("equipment")),
		Ingredients:         SplitTerms(values.Get("ingredients")),
		ExcludedIngredients: SplitTerms(values.Get("excludedIngredients")),
	}

	ints := []struct {
		param string
		dst   **int
	}{
		{"maxReadyInTime", &f.MaxReadyInTime},
		{"maxCookingTime", &f.MaxCookingTime},
		{"maxPreparationTime", &f.MaxPreparationTime},
		{"minServings", &f.MinServings},
		{"maxServings", &f.MaxServings},
	}
	for _, p := range ints {
		v, err := intParam(values, p.param)
		if err != nil {
			return nil, err
		}
		*p.dst = v
	}

	nutrients, err := parseNutrients(values)
	if err != nil {
		return nil, err
	}
	f.Nutrients = nutrients

	return f, nil
}

// ParseNutrients reads only the min/max nutrition parameters.
func ParseNutrients(values url.Values) (*Filter, error) {
	nutrients, err := parseNutrients(values)
	if err != nil {
		return nil, err
	}
	return &Filter{Nutrients: nutrients}, nil
}

func parseNutrients(values url.Values) (map[string]Range, error) {
	var out map[string]Range
	for _, macro := range Macros {
		suffix := strings.ToUpper(macro[:1]) + macro[1:]
		lo, err := floatParam(values, "min"+suffix)
		if err != nil {
			return nil, err
		}
		hi, err := floatParam(values, "max"+suffix)
		if err != nil {
			return nil, err
		}
		if lo == nil && hi == nil {
			continue
		}
		if out == nil {
			out = make(map[string]Range)
		}
		out[macro] = Range{Min: lo, Max: hi}
	}
	return out, nil
}

func intParam(values url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.Validation(name, fmt.Sprintf("%s must be an integer", name))
	}
	return &v, nil
}

func floatParam(values url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.Validation(name, fmt.Sprintf("%s must be a number", name))
	}
	return &v, nil
}

// Clauses renders the filter as predicates to be combined with AND.
func (f *Filter) Clauses() []clause.Expression {
	if f == nil {
		return nil
	}

	var exprs []clause.Expression

	if f.Title != "" {
		exprs = append(exprs, TextContains{Column: "title", Term: f.Title})
	}
	if f.Type != "" {
		exprs = append(exprs, TextContains{Column: "type", Term: f.Type})
	}

	for _, c := range f.Cuisines {
		exprs = append(exprs, TextContains{Column: "cuisine", Term: c})
	}
	for _, c := range f.ExcludedCuisines {
		exprs = append(exprs, TextContains{Column: "cuisine", Term: c, Negate: true})
	}

	exprs = append(exprs, setClauses("diets", "", f.Diets)...)
	exprs = append(exprs, setClauses("intolerances", "", f.Intolerances)...)
	exprs = append(exprs, setClauses("equipment", "", f.Equipment)...)

	if len(f.Ingredients) > 0 {
		ingredients := setClauses("ingredients", "name", f.Ingredients)
		if f.MatchAnyIngredient {
			exprs = append(exprs, AnyOf(ingredients))
		} else {
			exprs = append(exprs, ingredients...)
		}
	}
	for _, term := range f.ExcludedIngredients {
		exprs = append(exprs, SetContains{Column: "ingredients", Key: "name", Term: term, Negate: true})
	}

	if f.MaxReadyInTime != nil {
		exprs = append(exprs, clause.Lte{Column: column("ready_in_time"), Value: *f.MaxReadyInTime})
	}
	if f.MaxCookingTime != nil {
		exprs = append(exprs, clause.Lte{Column: column("cooking_time"), Value: *f.MaxCookingTime})
	}
	if f.MaxPreparationTime != nil {
		exprs = append(exprs, clause.Lte{Column: column("preparation_time"), Value: *f.MaxPreparationTime})
	}
	if f.MinServings != nil {
		exprs = append(exprs, clause.Gte{Column: column("serving_size"), Value: *f.MinServings})
	}
	if f.MaxServings != nil {
		exprs = append(exprs, clause.Lte{Column: column("serving_size"), Value: *f.MaxServings})
	}

	for _, macro := range Macros {
		r, ok := f.Nutrients[macro]
		if !ok {
			continue
		}
		if r.Min != nil {
			exprs = append(exprs, NutrientBound{Column: "nutrition", Macro: macro, Op: ">=", Value: *r.Min})
		}
		if r.Max != nil {
			exprs = append(exprs, NutrientBound{Column: "nutrition", Macro: macro, Op: "<=", Value: *r.Max})
		}
	}

	return exprs
}

func setClauses(col, key string, terms []string) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(terms))
	for _, term := range terms {
		exprs = append(exprs, SetContains{Column: col, Key: key, Term: term})
	}
	return exprs
}

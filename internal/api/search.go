package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/recipp/backend/internal/apperrors"
	"github.com/pageza/recipp/backend/internal/filter"
	"github.com/pageza/recipp/backend/internal/model"
	"github.com/pageza/recipp/backend/internal/service"
	"github.com/pageza/recipp/backend/internal/textfold"
	"github.com/pageza/recipp/backend/internal/types"
)

const missingIngredientsMessage = "Ingredients query parameter is required"

// SearchHandler serves the search routes. Every search is capped at
// defaultAmount results unless the request supplies amount.
type SearchHandler struct {
	recipes       service.IRecipeService
	defaultAmount int
}

func NewSearchHandler(recipes service.IRecipeService, defaultAmount int) *SearchHandler {
	return &SearchHandler{
		recipes:       recipes,
		defaultAmount: defaultAmount,
	}
}

func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", h.Search)
	router.GET("/complexSearch", h.ComplexSearch)
	router.GET("/searchByIngredients", h.SearchByIngredients)
	router.GET("/searchByExcludedIngredients", h.SearchByExcludedIngredients)
	router.GET("/searchByNutrients", h.SearchByNutrients)
}

// Search matches recipe titles against query (or q).
func (h *SearchHandler) Search(c *gin.Context) {
	title := c.Query("query")
	if title == "" {
		title = c.Query("q")
	}

	recipes, err := h.recipes.SearchByTitle(c.Request.Context(), strings.TrimSpace(title), amount(c, h.defaultAmount))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *SearchHandler) ComplexSearch(c *gin.Context) {
	f, err := filter.Parse(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.search(c, f)
}

// SearchByIngredients finds recipes containing the requested ingredients.
// With matchAll=true every ingredient must match; otherwise any one does and
// each result is annotated with missing and extra ingredients.
func (h *SearchHandler) SearchByIngredients(c *gin.Context) {
	terms := filter.SplitTerms(c.Query("ingredients"))
	if len(terms) == 0 {
		_ = c.Error(apperrors.Validation("ingredients", missingIngredientsMessage))
		return
	}
	matchAll := c.Query("matchAll") == "true"

	f := &filter.Filter{Ingredients: terms, MatchAnyIngredient: !matchAll}
	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), f, amount(c, h.defaultAmount))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if matchAll {
		c.JSON(http.StatusOK, recipes)
		return
	}

	annotated := make([]types.AnnotatedRecipe, 0, len(recipes))
	for _, r := range recipes {
		annotated = append(annotated, annotate(r, terms))
	}
	c.JSON(http.StatusOK, annotated)
}

func (h *SearchHandler) SearchByExcludedIngredients(c *gin.Context) {
	terms := filter.SplitTerms(c.Query("ingredients"))
	if len(terms) == 0 {
		_ = c.Error(apperrors.Validation("ingredients", missingIngredientsMessage))
		return
	}
	h.search(c, &filter.Filter{ExcludedIngredients: terms})
}

func (h *SearchHandler) SearchByNutrients(c *gin.Context) {
	f, err := filter.ParseNutrients(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.search(c, f)
}

func (h *SearchHandler) search(c *gin.Context, f *filter.Filter) {
	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), f, amount(c, h.defaultAmount))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// annotate compares a recipe's ingredients with the requested terms. Matching
// is by lower-cased substring, the same test the search predicate uses.
func annotate(r model.Recipe, terms []string) types.AnnotatedRecipe {
	title := cases.Title(language.Und, cases.NoLower)

	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = textfold.Lower(ing.Name())
	}

	out := types.AnnotatedRecipe{
		Recipe:             r,
		Ingredients:        make([]model.Ingredient, 0, len(r.Ingredients)),
		MissingIngredients: []string{},
		ExtraIngredients:   []string{},
	}

	for i, ing := range r.Ingredients {
		annotated := make(model.Ingredient, len(ing)+1)
		for k, v := range ing {
			annotated[k] = v
		}
		annotated["name"] = title.String(ing.Name())
		for _, term := range terms {
			if strings.Contains(names[i], term) && names[i] != term {
				annotated[types.ReplacementKey] = title.String(term)
				break
			}
		}
		out.Ingredients = append(out.Ingredients, annotated)

		if !containsAny(names[i], terms) {
			out.MissingIngredients = append(out.MissingIngredients, title.String(names[i]))
		}
	}

	for _, term := range terms {
		matched := false
		for _, name := range names {
			if strings.Contains(name, term) {
				matched = true
				break
			}
		}
		if !matched {
			out.ExtraIngredients = append(out.ExtraIngredients, title.String(term))
		}
	}

	sort.Strings(out.MissingIngredients)
	sort.Strings(out.ExtraIngredients)
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

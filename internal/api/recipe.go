package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipp/backend/internal/filter"
	"github.com/pageza/recipp/backend/internal/service"
	"github.com/pageza/recipp/backend/internal/types"
)

// RecipeHandler serves the /recipes routes.
type RecipeHandler struct {
	recipes service.IRecipeService
	images  service.IImageService
}

func NewRecipeHandler(recipes service.IRecipeService, images service.IImageService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/random", h.RandomRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/similar", h.SimilarRecipes)
		recipes.GET("/:id/image", h.RecipeImage)
		recipes.POST("/:id/star", h.StarRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// RandomRecipes applies the complex-search filters and draws amount recipes
// (one by default) from the matches.
func (h *RecipeHandler) RandomRecipes(c *gin.Context) {
	f, err := filter.Parse(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}

	recipes, err := h.recipes.RandomRecipes(c.Request.Context(), f, amount(c, 1))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SimilarRecipes returns recipes sharing the cuisine of the given one. The
// result is uncapped unless amount is given.
func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	recipes, err := h.recipes.SimilarRecipes(c.Request.Context(), id, amount(c, 0))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) StarRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	count, err := h.recipes.StarRecipe(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.StarResponse{
		Message:   "Recipe starred successfully",
		StarCount: count,
	})
}

// RecipeImage redirects to the recipe's image.
func (h *RecipeHandler) RecipeImage(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	url, err := h.images.ImageURL(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

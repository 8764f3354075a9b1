package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipp/backend/internal/apperrors"
	"github.com/pageza/recipp/backend/internal/filter"
	"github.com/pageza/recipp/backend/internal/model"
)

const recipeResource = "Recipe"

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// query starts a recipes query restricted by f. A nil filter matches every row.
func (s *RecipeService) query(ctx context.Context, f *filter.Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.Recipe{})
	if exprs := f.Clauses(); len(exprs) > 0 {
		q = q.Clauses(clause.Where{Exprs: exprs})
	}
	return q
}

// ListRecipes returns every recipe.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, apperrors.Store("listing recipes", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(recipeResource, id)
		}
		return nil, apperrors.Store("fetching the recipe", err)
	}
	return &recipe, nil
}

// SearchRecipes returns the recipes matching every predicate of f. A limit of
// zero or less returns all matches.
func (s *RecipeService) SearchRecipes(ctx context.Context, f *filter.Filter, limit int) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	q := s.query(ctx, f)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, apperrors.Store("searching for recipes", err)
	}
	return recipes, nil
}

// SearchByTitle returns recipes whose title contains title. An empty title
// matches every recipe.
func (s *RecipeService) SearchByTitle(ctx context.Context, title string, limit int) ([]model.Recipe, error) {
	return s.SearchRecipes(ctx, &filter.Filter{Title: title}, limit)
}

// RandomRecipes draws up to n distinct recipes uniformly from those matching f.
// The result keeps the order of the draw.
func (s *RecipeService) RandomRecipes(ctx context.Context, f *filter.Filter, n int) ([]model.Recipe, error) {
	if n < 1 {
		n = 1
	}

	var ids []uint
	if err := s.query(ctx, f).Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Store("selecting random recipes", err)
	}
	if len(ids) == 0 {
		return nil, apperrors.NotFound(recipeResource, nil)
	}

	if n > len(ids) {
		n = len(ids)
	}
	sample := make([]uint, n)
	for i, j := range rand.Perm(len(ids))[:n] {
		sample[i] = ids[j]
	}

	var rows []model.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", sample).Find(&rows).Error; err != nil {
		return nil, apperrors.Store("selecting random recipes", err)
	}

	byID := make(map[uint]model.Recipe, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	recipes := make([]model.Recipe, 0, len(sample))
	for _, id := range sample {
		if r, ok := byID[id]; ok {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

// SimilarRecipes returns recipes sharing the cuisine of recipe id, excluding
// the recipe itself.
func (s *RecipeService) SimilarRecipes(ctx context.Context, id uint, limit int) ([]model.Recipe, error) {
	base, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	recipes := []model.Recipe{}
	q := s.db.WithContext(ctx).
		Where("cuisine = ?", base.Cuisine).
		Where("id <> ?", base.ID)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, apperrors.Store("finding similar recipes", err)
	}
	return recipes, nil
}

// StarRecipe adds one star to recipe id and returns the new count. The
// increment is a single UPDATE so concurrent stars are never lost.
func (s *RecipeService) StarRecipe(ctx context.Context, id uint) (int, error) {
	var count int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Recipe{}).
			Where("id = ?", id).
			Update("star_count", gorm.Expr("star_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound(recipeResource, id)
		}
		return tx.Model(&model.Recipe{}).
			Where("id = ?", id).
			Select("star_count").
			Scan(&count).Error
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return 0, err
		}
		return 0, apperrors.Store("starring the recipe", fmt.Errorf("recipe %d: %w", id, err))
	}

	recipesStarred.Inc()
	return count, nil
}

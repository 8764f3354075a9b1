package service

import (
	"context"
	"io"
	"time"

	"github.com/pageza/recipp/backend/internal/filter"
	"github.com/pageza/recipp/backend/internal/model"
	"github.com/pageza/recipp/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*model.Recipe, error)
	SearchRecipes(ctx context.Context, f *filter.Filter, limit int) ([]model.Recipe, error)
	SearchByTitle(ctx context.Context, title string, limit int) ([]model.Recipe, error)
	RandomRecipes(ctx context.Context, f *filter.Filter, n int) ([]model.Recipe, error)
	SimilarRecipes(ctx context.Context, id uint, limit int) ([]model.Recipe, error)
	StarRecipe(ctx context.Context, id uint) (int, error)
}

// ISeedService defines the interface for seed reconciliation
type ISeedService interface {
	Sync(ctx context.Context, src io.Reader) (SyncResult, error)
	SyncFile(ctx context.Context, path string) (SyncResult, error)
}

// IAuthService defines the interface for admin token operations
type IAuthService interface {
	GenerateAdminToken(subject string, ttl time.Duration) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IImageService defines the interface for recipe image lookups
type IImageService interface {
	ImageURL(ctx context.Context, id uint) (string, error)
}

// Presigner signs object keys into temporary download URLs.
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string) (string, error)
}

var (
	_ IRecipeService = (*RecipeService)(nil)
	_ ISeedService   = (*SeedReconciler)(nil)
	_ IAuthService   = (*AuthService)(nil)
	_ IImageService  = (*ImageService)(nil)
)

package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/pageza/recipp/backend/internal/apperrors"
)

const imageResource = "Image"

// ImageService resolves recipe image paths to URLs a client can fetch.
type ImageService struct {
	recipes   IRecipeService
	presigner Presigner
}

// NewImageService creates a new ImageService instance. A nil presigner means
// only absolute image URLs can be served.
func NewImageService(recipes IRecipeService, presigner Presigner) *ImageService {
	return &ImageService{recipes: recipes, presigner: presigner}
}

// ImageURL returns the URL of the image of recipe id. Absolute http(s) image
// paths are returned unchanged; anything else is treated as an object key in
// the image bucket and presigned.
func (s *ImageService) ImageURL(ctx context.Context, id uint) (string, error) {
	recipe, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return "", err
	}

	image := strings.TrimSpace(recipe.Image)
	if image == "" {
		return "", apperrors.NotFound(imageResource, id)
	}
	if u, err := url.Parse(image); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return image, nil
	}
	if s.presigner == nil {
		return "", apperrors.NotFound(imageResource, id)
	}

	signed, err := s.presigner.GeneratePresignedURL(ctx, strings.TrimLeft(image, "/"))
	if err != nil {
		return "", apperrors.Store("signing the image URL", err)
	}
	return signed, nil
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   Response
	}{
		{
			name:       "validation",
			err:        Validation("ingredients", "Ingredients query parameter is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   Response{Message: "Ingredients query parameter is required"},
		},
		{
			name:       "not found",
			err:        NotFound("Recipe", 7),
			wantStatus: http.StatusNotFound,
			wantBody:   Response{Message: "Recipe not found"},
		},
		{
			name:       "not found wrapped in store error",
			err:        Store("starring the recipe", fmt.Errorf("lookup: %w", NotFound("Recipe", 7))),
			wantStatus: http.StatusNotFound,
			wantBody:   Response{Message: "Recipe not found"},
		},
		{
			name:       "store error",
			err:        Store("starring the recipe", errors.New("database is locked")),
			wantStatus: http.StatusInternalServerError,
			wantBody: Response{
				Message: "An error occurred while starring the recipe",
				Error:   "database is locked",
			},
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   Response{Message: "Internal server error", Error: "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := Translate(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestStoreNil(t *testing.T) {
	assert.NoError(t, Store("listing recipes", nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", NotFound("Recipe", 1))))
	assert.False(t, IsNotFound(errors.New("other")))
}

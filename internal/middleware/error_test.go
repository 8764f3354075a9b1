package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipp/backend/internal/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newErrorRouter(h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/", h)
	return r
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) apperrors.Response {
	t.Helper()
	var body apperrors.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   apperrors.Response
	}{
		{
			name:       "validation",
			err:        apperrors.Validation("id", "Invalid recipe id"),
			wantStatus: http.StatusBadRequest,
			wantBody:   apperrors.Response{Message: "Invalid recipe id"},
		},
		{
			name:       "not found",
			err:        apperrors.NotFound("Recipe", 7),
			wantStatus: http.StatusNotFound,
			wantBody:   apperrors.Response{Message: "Recipe not found"},
		},
		{
			name:       "store failure",
			err:        apperrors.Store("fetching the recipe", errors.New("disk I/O error")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   apperrors.Response{Message: "An error occurred while fetching the recipe", Error: "disk I/O error"},
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   apperrors.Response{Message: "Internal server error", Error: "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newErrorRouter(func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, decodeResponse(t, rr))
		})
	}
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) {
		panic("kaboom")
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, apperrors.Response{Message: "Internal server error", Error: "kaboom"}, decodeResponse(t, rr))
}

func TestErrorHandler_LeavesWrittenResponses(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
}

package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipp/backend/internal/apperrors"
)

// ErrorHandler renders errors recorded with c.Error as JSON and turns panics
// into 500 responses. Handlers record an error and return without writing.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				panicRecoveries.Inc()
				log.Printf("Error: panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, rec, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.Response{
					Message: "Internal server error",
					Error:   fmt.Sprint(rec),
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := apperrors.Translate(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Error: %s %s (request %s): %v", c.Request.Method, c.Request.URL.Path, c.GetString(RequestIDKey), err)
		}
		c.JSON(status, body)
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
)

// ErrorResponse is the body of every failed gateway request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorHandler renders the last error attached with c.Error as an
// ErrorResponse and turns panics into 500s.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic while handling request", "path", c.Request.URL.Path, "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Status:  http.StatusInternalServerError,
					Message: "Internal Server Error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		e := apperr.From(c.Errors.Last().Err)
		c.JSON(e.Status, ErrorResponse{Status: e.Status, Message: e.Error()})
	}
}

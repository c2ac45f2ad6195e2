package middleware

import (
	"errors"
	"net/http"

	"go-oscrec-backend/internal/delivery/http/response"
	"go-oscrec-backend/pkg/apperror"
	"go-oscrec-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors appended to the Gin context onto the response
// envelope. AppError carries its own status code and safe message; anything
// else is logged server-side and answered with a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message, string(appErr.Kind))
			return
		}

		logger.Log.Error("Unhandled error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

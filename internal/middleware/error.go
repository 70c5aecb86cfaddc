package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "nuam/internal/errors"
	"nuam/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context into JSON error
// responses for the API group. AppErrors keep their code and message;
// anything else is logged and reported as an internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			abortWithAppError(c, appErr)
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		abortWithAppError(c, apperrors.ErrInternalServer)
	}
}

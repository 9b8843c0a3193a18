package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "betmetric/internal/errors"
	"betmetric/internal/logger"
)

// ErrorHandler renders the last error attached to the Gin context as
// {"error":{"code","message"}}. Bind errors become INVALID_INPUT; anything
// that is not an AppError is logged and reported as INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		appErr := toAppError(last)
		if appErr.Internal != nil || appErr == apperrors.ErrInternalServer {
			cause := last.Err
			if appErr.Internal != nil {
				cause = appErr.Internal
			}
			logger.Get().Errorw("request failed",
				"request_id", RequestID(c),
				"code", appErr.Code,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", cause.Error(),
			)
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{"code": appErr.Code, "message": appErr.Message},
		})
	}
}

func toAppError(ginErr *gin.Error) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.As(ginErr.Err, &appErr):
		return appErr
	case ginErr.IsType(gin.ErrorTypeBind):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, ginErr.Err.Error())
	default:
		return apperrors.ErrInternalServer
	}
}

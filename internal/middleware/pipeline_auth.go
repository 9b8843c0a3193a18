package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "betmetric/internal/errors"
	"betmetric/internal/logger"
)

const apiKeyHeader = "X-API-Key"

// PipelineAuthMiddleware guards operational endpoints such as the
// classification sweep. Requests must carry the configured key in X-API-Key.
// With no key configured the endpoints are switched off.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWith(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		key := c.GetHeader(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			logger.Get().Warnw("rejected pipeline request",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"request_id", RequestID(c),
			)
			abortWith(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

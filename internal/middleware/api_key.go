package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
)

var errInvalidAPIKey = &apperrors.AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: apperrors.ErrUnauthorized.StatusCode}

// APIKeyAuth requires the X-API-Key header to equal apiKey. An empty apiKey
// leaves the route open, which is how /metrics runs in development.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, errInvalidAPIKey)
			return
		}
		c.Next()
	}
}

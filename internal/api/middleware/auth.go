package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/checkmint/checkmint/internal/logger"
)

// AuthConfig holds admin API authentication configuration
type AuthConfig struct {
	APIKeys []string
}

// APIKeyAuth returns a gin middleware validating the Authorization header
// against the configured API keys. The header format is "ApiKey <key>".
func APIKeyAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if err := authenticate(authHeader, cfg); err != "" {
			logger.Warn("Authentication failed",
				zap.String("reason", err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Authentication failed",
				},
			})
			return
		}
		c.Next()
	}
}

func authenticate(authHeader string, cfg AuthConfig) string {
	if len(cfg.APIKeys) == 0 {
		return "no API keys configured"
	}
	if authHeader == "" {
		return "missing Authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "apikey") {
		return "invalid Authorization header format"
	}

	for _, key := range cfg.APIKeys {
		if key != "" && subtle.ConstantTimeCompare([]byte(parts[1]), []byte(key)) == 1 {
			return ""
		}
	}
	return "unknown API key"
}

package middleware

import (
	"strings"

	"glowbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OptionalUserAuth sets "userID" from a valid bearer token. Anonymous and invalid tokens pass through
// without a user, since a quote does not require one.
func OptionalUserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			c.Next()
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			zap.L().Debug("ignoring invalid bearer token", zap.Error(err))
			c.Next()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderquest/pkg/utils"
)

func JWTAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			utils.RespondError(c, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		userId, err := tokens.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			utils.Logger(c).Debug("token rejected", zap.Error(err))
			utils.RespondError(c, http.StatusUnauthorized, "Token is not valid")
			return
		}

		// Pass user information to the next handler
		c.Set(utils.UserIDKey, userId)
		if l, ok := c.Get(utils.LoggerKey); ok {
			if logger, ok := l.(*zap.Logger); ok {
				c.Set(utils.LoggerKey, logger.With(zap.String("user_id", userId.String())))
			}
		}
		c.Next()
	}
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"cart-service/internal/auth"
	apperrors "cart-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdentityContextKey holds the auth.Identity of the caller
	IdentityContextKey = "identity"
	UsernameContextKey = "username"
)

// AuthMiddleware validates bearer tokens and stores the caller identity in the context
func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.NewUnauthorized("missing authorization header", "Header: Authorization"))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.NewUnauthorized("invalid authorization header format", "Expected: Bearer <token>"))
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				logger.Warn("Token expired",
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.NewUnauthorized("token expired", "Token has expired, please login again"))
				return
			}

			logger.Warn("Invalid token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.NewUnauthorized("invalid token", err.Error()))
			return
		}

		identity := claims.Identity()
		c.Set(IdentityContextKey, identity)
		c.Set(UsernameContextKey, claims.Username)

		logger.Debug("Token validated",
			zap.String("subject", identity.Subject),
			zap.Int64("user_id", identity.UserID),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// GetIdentity returns the identity stored by AuthMiddleware
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(IdentityContextKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eficaz-commerce/eficaz-api/internal/service"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
	"github.com/eficaz-commerce/eficaz-api/pkg/response"
)

// ContextUserKey is the gin context key storing the verified token claims.
const ContextUserKey = "currentUser"

// ContextTokenKey is the gin context key storing the raw bearer token, kept
// so logout can revoke the exact presented value.
const ContextTokenKey = "currentToken"

// JWT protects routes by requiring a valid, unrevoked bearer token. Every
// failure answers a bare 401; the reason is never surfaced.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, ok := authService.Validate(c.Request.Context(), parts[1])
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(ContextTokenKey, parts[1])
		c.Next()
	}
}

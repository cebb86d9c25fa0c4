package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/shared/response"
	"blog-backend/pkg/jwt"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserIDKey = "userID"
	ContextClaimsKey = "claims"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies the bearer token and attaches the resolved
// identity to the request context. Every failure mode (missing header,
// wrong scheme, malformed token, bad signature, expired) collapses into
// the same generic 401 so callers cannot probe which check failed.
// Claims are trusted as issued; no store lookup happens here.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextClaimsKey, claims)

		c.Next()
	}
}

// GetUserID returns the authenticated account id set by AuthMiddleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetClaims returns the decoded token claims set by AuthMiddleware.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

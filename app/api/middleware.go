package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tradelane/storefront/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"

	payloadContextKey = "tokenPayload"
)

// AuthMiddleware verifies the bearer token and stores its payload in the
// request context.
func AuthMiddleware(tokenMaker security.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || fields[0] != AuthorizationTypeBearer {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(payloadContextKey, payload)
		c.Next()
	}
}

// RequireScope rejects requests whose token payload lacks the given scope.
// It must run after AuthMiddleware.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(payloadContextKey)
		if !exists {
			ForbiddenResponse(c, "Access Denied: token payload not found in context")
			c.Abort()
			return
		}

		payload, ok := value.(*security.Payload)
		if !ok || payload.Scope != scope {
			ForbiddenResponse(c, "Access Denied: You do not have the required scope")
			c.Abort()
			return
		}

		c.Next()
	}
}

// TokenPayload returns the verified token payload, if any.
func TokenPayload(c *gin.Context) (*security.Payload, bool) {
	value, exists := c.Get(payloadContextKey)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*security.Payload)
	return payload, ok
}

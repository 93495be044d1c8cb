package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/domain/identity"
)

const principalContextKey = "staybook.principal"

// AuthMiddleware resolves bearer tokens through the identity gate and stashes
// the resulting identity on the request context. Requests without a valid
// token pass through anonymously; handlers decide what needs a principal.
type AuthMiddleware struct {
	Gate   identity.Gate
	Logger *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Gate == nil {
		c.Next()
		return
	}
	id, err := m.Gate.Authenticate(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidCredential) && m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	c.Set(principalContextKey, id)
	c.Next()
}

func currentIdentity(c *gin.Context) (identity.Identity, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return identity.Identity{}, false
	}
	id, ok := val.(identity.Identity)
	return id, ok
}

func requireIdentity(c *gin.Context) (identity.Identity, bool) {
	id, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return identity.Identity{}, false
	}
	return id, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"zaylux-store/internal/handler/httperr"
	"zaylux-store/internal/pkg/cookie"
	"zaylux-store/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	ctxAdminKey          = "admin"
	HeaderIdempotencyKey = "Idempotency-Key"
)

var errUnauthorized = errors.New("unauthorized")

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAdmin accepts a bearer token or the console cookie.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = cookie.GetAdminToken(c)
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxAdminKey, principal)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetAdmin(c *gin.Context) (usecase.AdminPrincipal, bool) {
	v, exists := c.Get(ctxAdminKey)
	if !exists {
		return usecase.AdminPrincipal{}, false
	}
	principal, ok := v.(usecase.AdminPrincipal)
	return principal, ok
}

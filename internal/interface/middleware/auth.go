package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
	repo "github.com/sportgear/ecommerce-auth/internal/domain/repository"
	"github.com/sportgear/ecommerce-auth/pkg/helpers"
	"github.com/sportgear/ecommerce-auth/pkg/response"
)

const (
	// CtxSubjectKey holds the authenticated email extracted from the token.
	CtxSubjectKey = "subject"
	// CtxUserKey holds the *entity.User loaded by RequireRole.
	CtxUserKey = "authUser"
)

// BearerToken extracts the token from the Authorization header. The
// "Bearer " prefix is optional.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	return strings.TrimSpace(h)
}

// Auth validates the bearer token and injects its subject (the user's
// email) into the gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		subject, err := jwt.ExtractSubject(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(CtxSubjectKey, subject)
		c.Next()
	}
}

// RequireRole loads the authenticated user by the token subject and
// rejects the request unless the account holds the required role.
// It must run after Auth.
func RequireRole(users repo.UserRepository, required entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetString(CtxSubjectKey)
		if subject == "" {
			response.Error(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		u, err := users.GetByEmail(contextOf(c), subject)
		if err != nil || u == nil {
			response.Error(c, http.StatusUnauthorized, "unknown account")
			c.Abort()
			return
		}
		if !u.HasRole(required) {
			response.Error(c, http.StatusForbidden, "insufficient role")
			c.Abort()
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

func contextOf(c *gin.Context) context.Context {
	if c.Request != nil {
		return c.Request.Context()
	}
	return context.Background()
}

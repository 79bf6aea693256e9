package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/sportgear/ecommerce-auth/internal/interface/http"
)

// AuthModule wires the public authentication endpoints.
// All of them are unauthenticated; /verify reads its own bearer header.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.GET("/verify", m.Handler.Verify)
		auth.GET("/users/:id", m.Handler.GetUser)
	}
}

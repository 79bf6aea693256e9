package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
	repo "github.com/sportgear/ecommerce-auth/internal/domain/repository"
	handlers "github.com/sportgear/ecommerce-auth/internal/interface/http"
	"github.com/sportgear/ecommerce-auth/internal/interface/middleware"
	"github.com/sportgear/ecommerce-auth/pkg/helpers"
)

// UserModule wires the management endpoints behind bearer auth and the
// ADMIN role gate.
type UserModule struct {
	Handler *handlers.UserHandler
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, users repo.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Repo: users, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/users")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireRole(m.Repo, entity.RoleAdmin))
	{
		admin.GET("", m.Handler.List)
		admin.GET("/stats", m.Handler.Stats)
		admin.GET("/:id", m.Handler.Get)
		admin.PUT("/:id/role", m.Handler.UpdateRole)
		admin.PUT("/:id/status", m.Handler.UpdateStatus)
		admin.PUT("/:id/profile", m.Handler.UpdateProfile)
		admin.PUT("/:id/password", m.Handler.UpdatePassword)
	}
}

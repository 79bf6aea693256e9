package router

import (
	"github.com/sportgear/ecommerce-auth/internal/application"
	"github.com/sportgear/ecommerce-auth/internal/container"
	pginfra "github.com/sportgear/ecommerce-auth/internal/infrastructure/postgres"
	handlers "github.com/sportgear/ecommerce-auth/internal/interface/http"
	"github.com/sportgear/ecommerce-auth/internal/router/modules"
)

// InitModules builds the feature modules from the container singletons and
// registers them. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		repo,
		container.GetHasher(),
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESUsersIndex,
		cfg.MailSendEnabled,
	)
	userSvc := application.NewUserService(
		repo,
		container.GetHasher(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESUsersIndex,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, container.GetLogger())))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, container.GetLogger()), repo, container.GetJWT()))
}

package router

import (
	userapp "github.com/vidtube/backend/internal/application"
	"github.com/vidtube/backend/internal/container"
	"github.com/vidtube/backend/internal/infrastructure/gcs"
	pginfra "github.com/vidtube/backend/internal/infrastructure/postgres"
	handlers "github.com/vidtube/backend/internal/interface/http"
	"github.com/vidtube/backend/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	subs := pginfra.NewSubscriptionRepository(pool)
	videos := pginfra.NewVideoRepository(pool)
	assets := gcs.NewGateway(container.GetGCS(), cfg.GCSBucket)

	userSvc := userapp.NewUserService(
		users,
		videos,
		container.GetJWT(),
		assets,
		container.GetLogger(),
		container.GetES(),
		cfg.ESChannelsIndex,
	)
	channelSvc := userapp.NewChannelService(users, subs, videos, container.GetLogger())

	userHandler := handlers.NewUserHandler(userSvc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	channelHandler := handlers.NewChannelHandler(userSvc, channelSvc, container.GetLogger())

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewChannelModule(channelHandler, container.GetJWT()))
	r.Add(modules.NewHealthModule())
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/backend/internal/container"
	handlers "github.com/vidtube/backend/internal/interface/http"
	"github.com/vidtube/backend/internal/interface/middleware"
	"github.com/vidtube/backend/pkg/helpers"
)

// ChannelModule wires the read-side graph routes and subscription edges.
// All routes require an authenticated caller.

type ChannelModule struct {
	Handler *handlers.ChannelHandler
	JWT     *helpers.JWTManager
}

func NewChannelModule(h *handlers.ChannelHandler, jwt *helpers.JWTManager) *ChannelModule {
	return &ChannelModule{Handler: h, JWT: jwt}
}

func (m *ChannelModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID()))
	{
		auth.GET("/channels/search", m.Handler.Search)
		auth.GET("/channels/:username", m.Handler.GetProfile)
		auth.GET("/channels/:username/history", m.Handler.GetWatchHistory)
		auth.POST("/channels/:username/subscription", m.Handler.Subscribe)
		auth.DELETE("/channels/:username/subscription", m.Handler.Unsubscribe)
		auth.POST("/videos/:id/watch", m.Handler.RecordWatch)
	}
}

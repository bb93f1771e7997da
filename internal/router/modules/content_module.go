package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/dugouthq/dugout/internal/interface/http"
	"github.com/dugouthq/dugout/internal/interface/middleware"
)

// ContentModule wires the public aggregation endpoints. No auth; the data is
// the same for every caller, so only a per-IP limiter applies.
type ContentModule struct {
	Handler *handlers.ContentHandler
	Redis   *redis.Client
}

func NewContentModule(h *handlers.ContentHandler, rdb *redis.Client) *ContentModule {
	return &ContentModule{Handler: h, Redis: rdb}
}

func (m *ContentModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)

	content := rg.Group("/content", rl)
	{
		content.GET("/top-players", m.Handler.TopPlayers)
		content.GET("/top-teams", m.Handler.TopTeams)
		content.GET("/relevant", m.Handler.Relevant)
		content.GET("/team/:teamId", m.Handler.TeamContent)
		content.GET("/player/:playerId", m.Handler.PlayerContent)
	}
}

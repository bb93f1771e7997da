package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/dugouthq/dugout/internal/interface/http"
	"github.com/dugouthq/dugout/internal/interface/middleware"
	"github.com/dugouthq/dugout/pkg/helpers"
)

// ProfileModule wires the identity-scoped routes behind the bearer-token gate.
// Every route reads the caller id from the verified token, never from the
// request.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile/favorites", m.Handler.ReplaceFavorites)
		auth.GET("/profile/favorites/teams", m.Handler.FavoriteTeams)
		auth.GET("/profile/favorites/players", m.Handler.FavoritePlayers)
		auth.PUT("/profile/favorites/teams/:teamId", m.Handler.AddFavoriteTeam)
		auth.DELETE("/profile/favorites/teams/:teamId", m.Handler.RemoveFavoriteTeam)
		auth.PUT("/profile/favorites/players/:playerId", m.Handler.AddFavoritePlayer)
		auth.DELETE("/profile/favorites/players/:playerId", m.Handler.RemoveFavoritePlayer)
		auth.GET("/profile/digest", m.Handler.Digest)
	}
}

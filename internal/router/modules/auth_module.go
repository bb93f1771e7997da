package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/dugouthq/dugout/internal/interface/http"
	"github.com/dugouthq/dugout/internal/interface/middleware"
)

// AuthModule wires the session endpoints.
// Public: POST /api/register, POST /api/login, POST /api/token, POST /api/logout
// Login carries the tightest limiter since it is the credential-guessing
// surface; token refresh is routine and gets a looser one.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP
	tokenLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/token", tokenLimiter, m.Handler.Refresh)
	rg.POST("/logout", tokenLimiter, m.Handler.Logout)
}

package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dugouthq/dugout/config"
	"github.com/dugouthq/dugout/internal/application"
	"github.com/dugouthq/dugout/internal/infrastructure/analytics"
	"github.com/dugouthq/dugout/internal/infrastructure/genai"
	"github.com/dugouthq/dugout/pkg/helpers"
)

// Container holds the long-lived components constructed at startup. It is
// built once in main and handed to the router explicitly; nothing reads it
// through package-level state.
type Container struct {
	Cfg       *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	JWT       *helpers.JWTManager
	Analytics analytics.Store
	Generator genai.Generator
	Directory application.SportsDirectory
	Videos    application.VideoSearcher
}

// Close releases every owned connection. Safe to call with partially
// constructed fields during startup failure paths.
func (c *Container) Close() {
	if c.Analytics != nil {
		_ = c.Analytics.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}

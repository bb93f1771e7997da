package router

import (
	"github.com/dugouthq/dugout/internal/application"
	"github.com/dugouthq/dugout/internal/container"
	"github.com/dugouthq/dugout/internal/domain/repository"
	pginfra "github.com/dugouthq/dugout/internal/infrastructure/postgres"
	handlers "github.com/dugouthq/dugout/internal/interface/http"
	"github.com/dugouthq/dugout/internal/router/modules"
)

type ModuleDeps struct {
	Repo           repository.UserRepository
	AuthService    *application.AuthService
	ProfileService *application.ProfileService
	ContentService *application.ContentService
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	ContentHandler *handlers.ContentHandler
}

func buildDeps(c *container.Container) ModuleDeps {
	repo := pginfra.NewUserRepository(c.PGPool)

	authSvc := application.NewAuthService(repo, c.JWT, c.Redis, c.Logger)
	profileSvc := application.NewProfileService(repo, c.Logger)
	contentSvc := application.NewContentService(
		c.Analytics,
		c.Generator,
		c.Directory,
		c.Videos,
		repo,
		c.Logger,
		c.Cfg.TopDefaultLimit,
		c.Cfg.TopMaxLimit,
		c.Cfg.UpstreamTimeout,
	)

	return ModuleDeps{
		Repo:           repo,
		AuthService:    authSvc,
		ProfileService: profileSvc,
		ContentService: contentSvc,
		AuthHandler:    handlers.NewAuthHandler(authSvc, c.Logger),
		ProfileHandler: handlers.NewProfileHandler(profileSvc, contentSvc, c.Logger),
		ContentHandler: handlers.NewContentHandler(contentSvc, c.Logger),
	}
}

// InitModules builds all feature modules from the container and registers
// them with the router registry. Called once during application startup.
func InitModules(r *Registry, c *container.Container) {
	deps := buildDeps(c)
	r.Add(modules.NewAuthModule(deps.AuthHandler, c.Redis))
	r.Add(modules.NewProfileModule(deps.ProfileHandler, c.JWT, c.Redis))
	r.Add(modules.NewContentModule(deps.ContentHandler, c.Redis))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}

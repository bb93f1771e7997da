package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/dugouthq/dugout/internal/domain/entity"
	"github.com/dugouthq/dugout/internal/domain/repository"
)

// ProfileService exposes an identity's own record and favorite sets. The
// caller's id always comes from a verified token; no operation accepts a
// subject id from a request body.
type ProfileService struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
}

func NewProfileService(repo repository.UserRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: repo, Logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Favorite mutations are idempotent: adding a member twice or removing a
// non-member succeeds and reports changed=false.

func (s *ProfileService) AddFavoritePlayer(ctx context.Context, userID string, playerID int64) (bool, error) {
	return s.translate(s.Repo.AddFavoritePlayer(ctx, userID, playerID))
}

func (s *ProfileService) RemoveFavoritePlayer(ctx context.Context, userID string, playerID int64) (bool, error) {
	return s.translate(s.Repo.RemoveFavoritePlayer(ctx, userID, playerID))
}

func (s *ProfileService) AddFavoriteTeam(ctx context.Context, userID string, teamID int64) (bool, error) {
	return s.translate(s.Repo.AddFavoriteTeam(ctx, userID, teamID))
}

func (s *ProfileService) RemoveFavoriteTeam(ctx context.Context, userID string, teamID int64) (bool, error) {
	return s.translate(s.Repo.RemoveFavoriteTeam(ctx, userID, teamID))
}

// ReplaceFavorites atomically replaces both sets. Inputs are deduplicated at
// the store; nil slices are treated as empty sets.
func (s *ProfileService) ReplaceFavorites(ctx context.Context, userID string, teamIDs, playerIDs []int64) error {
	if teamIDs == nil {
		teamIDs = []int64{}
	}
	if playerIDs == nil {
		playerIDs = []int64{}
	}
	err := s.Repo.ReplaceFavorites(ctx, userID, teamIDs, playerIDs)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *ProfileService) FavoriteTeamIDs(ctx context.Context, userID string) ([]int64, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.FavoriteTeams, nil
}

func (s *ProfileService) FavoritePlayerIDs(ctx context.Context, userID string) ([]int64, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.FavoritePlayers, nil
}

func (s *ProfileService) translate(changed bool, err error) (bool, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return false, ErrUserNotFound
	}
	return changed, err
}

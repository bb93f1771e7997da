package repository

import (
	"context"
	"errors"

	"github.com/dugouthq/dugout/internal/domain/entity"
)

// Store-level sentinel errors. The application layer translates these into
// its own taxonomy.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the persistence operations for identities and their
// favorite sets. Favorite mutations are atomic at the store and report
// whether the set actually changed, so add/remove stay idempotent no matter
// which path runs first.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	AddFavoritePlayer(ctx context.Context, userID string, playerID int64) (changed bool, err error)
	RemoveFavoritePlayer(ctx context.Context, userID string, playerID int64) (changed bool, err error)
	AddFavoriteTeam(ctx context.Context, userID string, teamID int64) (changed bool, err error)
	RemoveFavoriteTeam(ctx context.Context, userID string, teamID int64) (changed bool, err error)
	ReplaceFavorites(ctx context.Context, userID string, teamIDs, playerIDs []int64) error
}

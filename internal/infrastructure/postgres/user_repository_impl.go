package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dugouthq/dugout/internal/domain/entity"
	"github.com/dugouthq/dugout/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, favorite_team_ids, favorite_player_ids, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, favorite_team_ids, favorite_player_ids)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash, u.FirstName, u.LastName, emptyIfNil(u.FavoriteTeams), emptyIfNil(u.FavoritePlayers))

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on users_email_key. The constraint, not an
		// application-level lookup, is what closes the check-then-insert race.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.FavoriteTeams, &u.FavoritePlayers, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Favorite mutations are single guarded UPDATEs so the store stays the only
// arbiter of set membership. RowsAffected==0 means either "no change" or
// "no such user"; the existence probe disambiguates.

func (r *UserRepository) AddFavoritePlayer(ctx context.Context, userID string, playerID int64) (bool, error) {
	return r.mutate(ctx, userID, `
		UPDATE users
		SET favorite_player_ids = array_append(favorite_player_ids, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(favorite_player_ids))
	`, playerID)
}

func (r *UserRepository) RemoveFavoritePlayer(ctx context.Context, userID string, playerID int64) (bool, error) {
	return r.mutate(ctx, userID, `
		UPDATE users
		SET favorite_player_ids = array_remove(favorite_player_ids, $2), updated_at = now()
		WHERE id = $1 AND $2 = ANY(favorite_player_ids)
	`, playerID)
}

func (r *UserRepository) AddFavoriteTeam(ctx context.Context, userID string, teamID int64) (bool, error) {
	return r.mutate(ctx, userID, `
		UPDATE users
		SET favorite_team_ids = array_append(favorite_team_ids, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(favorite_team_ids))
	`, teamID)
}

func (r *UserRepository) RemoveFavoriteTeam(ctx context.Context, userID string, teamID int64) (bool, error) {
	return r.mutate(ctx, userID, `
		UPDATE users
		SET favorite_team_ids = array_remove(favorite_team_ids, $2), updated_at = now()
		WHERE id = $1 AND $2 = ANY(favorite_team_ids)
	`, teamID)
}

func (r *UserRepository) mutate(ctx context.Context, userID, sql string, subjectID int64) (bool, error) {
	res, err := r.pool.Exec(ctx, sql, userID, subjectID)
	if err != nil {
		return false, err
	}
	if res.RowsAffected() > 0 {
		return true, nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}

func (r *UserRepository) ReplaceFavorites(ctx context.Context, userID string, teamIDs, playerIDs []int64) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET favorite_team_ids = $2, favorite_player_ids = $3, updated_at = now()
		WHERE id = $1
	`, userID, dedupe(teamIDs), dedupe(playerIDs))
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func emptyIfNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// dedupe keeps first occurrence order; the columns hold sets, not lists.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ repository.UserRepository = (*UserRepository)(nil)

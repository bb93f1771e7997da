package application

import (
	"context"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dugouthq/dugout/internal/domain/entity"
	"github.com/dugouthq/dugout/internal/domain/repository"
)

// memRepo is an in-memory UserRepository with the same idempotence semantics
// as the Postgres implementation.
type memRepo struct {
	mu     sync.Mutex
	seq    int
	users  map[string]*entity.User
	emails map[string]string
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*entity.User), emails: make(map[string]string)}
}

func (r *memRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.emails[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.seq++
	u.ID = "user-" + strconv.Itoa(r.seq)
	u.FavoriteTeams = []int64{}
	u.FavoritePlayers = []int64{}
	cp := *u
	r.users[u.ID] = &cp
	r.emails[u.Email] = u.ID
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	id, ok := r.emails[email]
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(context.Background(), id)
}

func (r *memRepo) AddFavoritePlayer(_ context.Context, userID string, playerID int64) (bool, error) {
	return r.mutate(userID, func(u *entity.User) bool {
		var changed bool
		u.FavoritePlayers, changed = addMember(u.FavoritePlayers, playerID)
		return changed
	})
}

func (r *memRepo) RemoveFavoritePlayer(_ context.Context, userID string, playerID int64) (bool, error) {
	return r.mutate(userID, func(u *entity.User) bool {
		var changed bool
		u.FavoritePlayers, changed = removeMember(u.FavoritePlayers, playerID)
		return changed
	})
}

func (r *memRepo) AddFavoriteTeam(_ context.Context, userID string, teamID int64) (bool, error) {
	return r.mutate(userID, func(u *entity.User) bool {
		var changed bool
		u.FavoriteTeams, changed = addMember(u.FavoriteTeams, teamID)
		return changed
	})
}

func (r *memRepo) RemoveFavoriteTeam(_ context.Context, userID string, teamID int64) (bool, error) {
	return r.mutate(userID, func(u *entity.User) bool {
		var changed bool
		u.FavoriteTeams, changed = removeMember(u.FavoriteTeams, teamID)
		return changed
	})
}

func (r *memRepo) ReplaceFavorites(_ context.Context, userID string, teamIDs, playerIDs []int64) error {
	_, err := r.mutate(userID, func(u *entity.User) bool {
		u.FavoriteTeams = append([]int64{}, teamIDs...)
		u.FavoritePlayers = append([]int64{}, playerIDs...)
		return true
	})
	return err
}

func (r *memRepo) mutate(userID string, fn func(*entity.User) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, repository.ErrNotFound
	}
	return fn(u), nil
}

func addMember(s []int64, v int64) ([]int64, bool) {
	for _, m := range s {
		if m == v {
			return s, false
		}
	}
	return append(s, v), true
}

func removeMember(s []int64, v int64) ([]int64, bool) {
	for i, m := range s {
		if m == v {
			return append(s[:i:i], s[i+1:]...), true
		}
	}
	return s, false
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discard{})
	return l
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

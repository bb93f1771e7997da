package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugouthq/dugout/internal/domain/entity"
)

func seedUser(t *testing.T, repo *memRepo) *entity.User {
	t.Helper()
	u := &entity.User{Email: "fan@example.com", PasswordHash: "x", FirstName: "Demo", LastName: "Fan"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestFavoriteAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewProfileService(repo, testLogger())
	u := seedUser(t, repo)

	changed, err := svc.AddFavoritePlayer(ctx, u.ID, 660271)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.AddFavoritePlayer(ctx, u.ID, 660271)
	require.NoError(t, err)
	assert.False(t, changed)

	ids, err := svc.FavoritePlayerIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{660271}, ids)
}

func TestFavoriteRemoveNonMember(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewProfileService(repo, testLogger())
	u := seedUser(t, repo)

	changed, err := svc.RemoveFavoriteTeam(ctx, u.ID, 147)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.AddFavoriteTeam(ctx, u.ID, 147)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.RemoveFavoriteTeam(ctx, u.ID, 147)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestFavoriteMutationUnknownUser(t *testing.T) {
	svc := NewProfileService(newMemRepo(), testLogger())

	_, err := svc.AddFavoritePlayer(context.Background(), "ghost", 660271)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReplaceFavorites(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewProfileService(repo, testLogger())
	u := seedUser(t, repo)

	_, err := svc.AddFavoriteTeam(ctx, u.ID, 111)
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceFavorites(ctx, u.ID, []int64{147, 119}, []int64{660271}))

	teams, err := svc.FavoriteTeamIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{147, 119}, teams)

	players, err := svc.FavoritePlayerIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{660271}, players)
}

func TestReplaceFavoritesNilMeansEmpty(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewProfileService(repo, testLogger())
	u := seedUser(t, repo)

	_, err := svc.AddFavoriteTeam(ctx, u.ID, 147)
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceFavorites(ctx, u.ID, nil, nil))

	teams, err := svc.FavoriteTeamIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := NewProfileService(newMemRepo(), testLogger())
	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

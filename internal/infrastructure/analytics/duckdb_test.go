package analytics

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *DuckDBStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping embedded database test")
	}

	path := filepath.Join(t.TempDir(), "interactions.duckdb")
	db, err := sql.Open("duckdb", path)
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE content_interaction (
			user_id VARCHAR,
			slug VARCHAR,
			content_type VARCHAR,
			content_headline VARCHAR,
			followed_team_ids BIGINT[],
			followed_player_ids BIGINT[]
		)`,
		`INSERT INTO content_interaction VALUES
			('u1','judge-walkoff','article','Judge walks it off',[147],[592450,660271]),
			('u2','judge-walkoff','article','Judge walks it off',[147],[592450]),
			('u3','ohtani-two-homers','video','Ohtani launches two',[119],[660271]),
			('u4','ohtani-two-homers','video','Ohtani launches two',[119,147],[660271]),
			('u5','trade-recap','podcast','Deadline recap',[147],[543037])`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	store, err := NewDuckDBStore(path, "content_interaction", 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDuckDBTopFollowedPlayers(t *testing.T) {
	store := seedStore(t)

	rows, err := store.TopFollowedPlayers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 660271 appears three times, 592450 twice, 543037 once.
	assert.Equal(t, FollowRow{SubjectID: 660271, FollowCount: 3}, rows[0])
	assert.Equal(t, FollowRow{SubjectID: 592450, FollowCount: 2}, rows[1])
	assert.Equal(t, FollowRow{SubjectID: 543037, FollowCount: 1}, rows[2])
}

func TestDuckDBTopFollowedTeamsTieBreak(t *testing.T) {
	store := seedStore(t)

	rows, err := store.TopFollowedTeams(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 147 appears four times, 119 twice. Equal counts would order by id.
	assert.Equal(t, int64(147), rows[0].SubjectID)
	assert.Equal(t, int64(4), rows[0].FollowCount)
	assert.Equal(t, int64(119), rows[1].SubjectID)
}

func TestDuckDBLimitApplies(t *testing.T) {
	store := seedStore(t)

	rows, err := store.TopFollowedPlayers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(660271), rows[0].SubjectID)
}

func TestDuckDBPlayerContent(t *testing.T) {
	store := seedStore(t)

	rows, err := store.PlayerContent(context.Background(), 660271, 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// ohtani-two-homers has two interactions for this player, judge-walkoff one.
	assert.Equal(t, "ohtani-two-homers", rows[0].Slug)
	assert.Equal(t, "video", rows[0].ContentType)
	assert.Equal(t, "judge-walkoff", rows[1].Slug)
}

func TestDuckDBRelevantContent(t *testing.T) {
	store := seedStore(t)

	rows, err := store.RelevantContent(context.Background(), 5)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	// One row per followed subject, each carrying that subject's top slug.
	seen := map[int64]bool{}
	for _, r := range rows {
		assert.False(t, seen[r.SubjectID], "subject %d appears twice", r.SubjectID)
		seen[r.SubjectID] = true
		assert.NotEmpty(t, r.Slug)
		assert.NotEmpty(t, r.Headline)
	}
	assert.True(t, seen[660271])
}

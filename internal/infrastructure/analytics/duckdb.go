package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBStore runs the same rankings against an embedded DuckDB file. It
// exists so development and seeding do not need BigQuery credentials; the
// schema mirrors the interaction table (slug, content_type, content_headline,
// followed_player_ids, followed_team_ids).
type DuckDBStore struct {
	db      *sql.DB
	table   string
	timeout time.Duration
}

func NewDuckDBStore(path, table string, timeout time.Duration) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DuckDBStore{db: db, table: table, timeout: timeout}, nil
}

func (s *DuckDBStore) Close() error { return s.db.Close() }

func (s *DuckDBStore) TopFollowedPlayers(ctx context.Context, limit int) ([]FollowRow, error) {
	return s.topFollowed(ctx, "followed_player_ids", limit)
}

func (s *DuckDBStore) TopFollowedTeams(ctx context.Context, limit int) ([]FollowRow, error) {
	return s.topFollowed(ctx, "followed_team_ids", limit)
}

func (s *DuckDBStore) topFollowed(ctx context.Context, column string, limit int) ([]FollowRow, error) {
	query := fmt.Sprintf(`
		SELECT subject_id, COUNT(*) AS follow_count
		FROM (SELECT UNNEST(%s) AS subject_id FROM %s)
		GROUP BY subject_id
		ORDER BY follow_count DESC, subject_id ASC
		LIMIT ?
	`, column, s.table)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []FollowRow
	for rows.Next() {
		var r FollowRow
		if err := rows.Scan(&r.SubjectID, &r.FollowCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *DuckDBStore) RelevantContent(ctx context.Context, limit int) ([]ContentRow, error) {
	query := fmt.Sprintf(`
		WITH exploded AS (
			SELECT UNNEST(followed_player_ids) AS subject_id, slug, content_type, content_headline
			FROM %s
		),
		top_subjects AS (
			SELECT subject_id, COUNT(*) AS cnt
			FROM exploded
			GROUP BY subject_id
			ORDER BY cnt DESC, subject_id ASC
			LIMIT ?
		),
		ranked AS (
			SELECT subject_id, slug,
				ANY_VALUE(content_type) AS content_type,
				ANY_VALUE(content_headline) AS headline,
				ROW_NUMBER() OVER (PARTITION BY subject_id ORDER BY COUNT(*) DESC, slug ASC) AS rn
			FROM exploded
			WHERE slug IS NOT NULL
			GROUP BY subject_id, slug
		)
		SELECT r.subject_id, r.slug, r.content_type, r.headline
		FROM ranked r
		JOIN top_subjects t USING (subject_id)
		WHERE r.rn = 1
		ORDER BY t.cnt DESC, r.slug ASC
	`, s.table)
	return s.contentRows(ctx, query, limit)
}

func (s *DuckDBStore) TeamContent(ctx context.Context, teamID int64, limit int) ([]ContentRow, error) {
	return s.subjectContent(ctx, "followed_team_ids", teamID, limit)
}

func (s *DuckDBStore) PlayerContent(ctx context.Context, playerID int64, limit int) ([]ContentRow, error) {
	return s.subjectContent(ctx, "followed_player_ids", playerID, limit)
}

func (s *DuckDBStore) subjectContent(ctx context.Context, column string, subjectID int64, limit int) ([]ContentRow, error) {
	query := fmt.Sprintf(`
		WITH exploded AS (
			SELECT UNNEST(%s) AS fid, slug, content_type, content_headline
			FROM %s
		)
		SELECT fid AS subject_id, slug,
			ANY_VALUE(content_type) AS content_type,
			ANY_VALUE(content_headline) AS headline
		FROM exploded
		WHERE fid = ? AND slug IS NOT NULL
		GROUP BY fid, slug
		ORDER BY COUNT(*) DESC, slug ASC
		LIMIT ?
	`, column, s.table)
	return s.contentRows(ctx, query, subjectID, limit)
}

func (s *DuckDBStore) contentRows(ctx context.Context, query string, args ...any) ([]ContentRow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ContentRow
	for rows.Next() {
		var r ContentRow
		if err := rows.Scan(&r.SubjectID, &r.Slug, &r.ContentType, &r.Headline); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ Store = (*DuckDBStore)(nil)

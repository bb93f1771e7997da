package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BigQueryStore answers ranking queries against the content-interaction
// table. Each interaction row records a content item (slug, type, headline)
// together with the player/team ids the interacting user followed.
type BigQueryStore struct {
	client  *bigquery.Client
	table   string // fully qualified `project.dataset.table`
	timeout time.Duration
}

func NewBigQueryStore(ctx context.Context, project, dataset, table, credsPath string, timeout time.Duration) (*BigQueryStore, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, err
	}
	return &BigQueryStore{
		client:  client,
		table:   fmt.Sprintf("%s.%s.%s", project, dataset, table),
		timeout: timeout,
	}, nil
}

func (s *BigQueryStore) Close() error { return s.client.Close() }

type bqFollowRow struct {
	SubjectID   int64 `bigquery:"subject_id"`
	FollowCount int64 `bigquery:"follow_count"`
}

type bqContentRow struct {
	SubjectID   int64  `bigquery:"subject_id"`
	Slug        string `bigquery:"slug"`
	ContentType string `bigquery:"content_type"`
	Headline    string `bigquery:"headline"`
}

func (s *BigQueryStore) TopFollowedPlayers(ctx context.Context, limit int) ([]FollowRow, error) {
	return s.topFollowed(ctx, "followed_player_ids", limit)
}

func (s *BigQueryStore) TopFollowedTeams(ctx context.Context, limit int) ([]FollowRow, error) {
	return s.topFollowed(ctx, "followed_team_ids", limit)
}

func (s *BigQueryStore) topFollowed(ctx context.Context, column string, limit int) ([]FollowRow, error) {
	sql := fmt.Sprintf(`
		SELECT subject_id, COUNT(*) AS follow_count
		FROM %s, UNNEST(%s) AS subject_id
		GROUP BY subject_id
		ORDER BY follow_count DESC, subject_id ASC
		LIMIT @limit
	`, "`"+s.table+"`", column)

	q := s.client.Query(sql)
	q.Parameters = []bigquery.QueryParameter{{Name: "limit", Value: limit}}

	rows, err := readAll[bqFollowRow](ctx, q, s.timeout)
	if err != nil {
		return nil, err
	}
	out := make([]FollowRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, FollowRow{SubjectID: r.SubjectID, FollowCount: r.FollowCount})
	}
	return out, nil
}

// RelevantContent ranks the most-followed players, then picks each one's
// most-frequent content slug.
func (s *BigQueryStore) RelevantContent(ctx context.Context, limit int) ([]ContentRow, error) {
	sql := fmt.Sprintf(`
		WITH top_subjects AS (
			SELECT subject_id, COUNT(*) AS cnt
			FROM %[1]s, UNNEST(followed_player_ids) AS subject_id
			GROUP BY subject_id
			ORDER BY cnt DESC, subject_id ASC
			LIMIT @limit
		),
		ranked AS (
			SELECT subject_id, slug,
				ANY_VALUE(content_type) AS content_type,
				ANY_VALUE(content_headline) AS headline,
				ROW_NUMBER() OVER (PARTITION BY subject_id ORDER BY COUNT(*) DESC, slug ASC) AS rn
			FROM %[1]s, UNNEST(followed_player_ids) AS subject_id
			WHERE slug IS NOT NULL
			GROUP BY subject_id, slug
		)
		SELECT r.subject_id, r.slug, r.content_type, r.headline
		FROM ranked r
		JOIN top_subjects t USING (subject_id)
		WHERE r.rn = 1
		ORDER BY t.cnt DESC, r.slug ASC
	`, "`"+s.table+"`")

	q := s.client.Query(sql)
	q.Parameters = []bigquery.QueryParameter{{Name: "limit", Value: limit}}
	return s.contentRows(ctx, q)
}

func (s *BigQueryStore) TeamContent(ctx context.Context, teamID int64, limit int) ([]ContentRow, error) {
	return s.subjectContent(ctx, "followed_team_ids", teamID, limit)
}

func (s *BigQueryStore) PlayerContent(ctx context.Context, playerID int64, limit int) ([]ContentRow, error) {
	return s.subjectContent(ctx, "followed_player_ids", playerID, limit)
}

func (s *BigQueryStore) subjectContent(ctx context.Context, column string, subjectID int64, limit int) ([]ContentRow, error) {
	sql := fmt.Sprintf(`
		SELECT @subject_id AS subject_id, slug,
			ANY_VALUE(content_type) AS content_type,
			ANY_VALUE(content_headline) AS headline
		FROM %s, UNNEST(%s) AS fid
		WHERE fid = @subject_id AND slug IS NOT NULL
		GROUP BY slug
		ORDER BY COUNT(*) DESC, slug ASC
		LIMIT @limit
	`, "`"+s.table+"`", column)

	q := s.client.Query(sql)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "subject_id", Value: subjectID},
		{Name: "limit", Value: limit},
	}
	return s.contentRows(ctx, q)
}

func (s *BigQueryStore) contentRows(ctx context.Context, q *bigquery.Query) ([]ContentRow, error) {
	rows, err := readAll[bqContentRow](ctx, q, s.timeout)
	if err != nil {
		return nil, err
	}
	out := make([]ContentRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ContentRow{
			SubjectID:   r.SubjectID,
			Slug:        r.Slug,
			ContentType: r.ContentType,
			Headline:    r.Headline,
		})
	}
	return out, nil
}

func readAll[T any](ctx context.Context, q *bigquery.Query, timeout time.Duration) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	it, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	var out []T
	for {
		var row T
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

var _ Store = (*BigQueryStore)(nil)

// Package analytics wraps the interaction-count store behind a small query
// interface. Two drivers exist: BigQuery (production) and embedded DuckDB
// (development and seeding). Both answer the same ranking questions over the
// content-interaction corpus.
//
// Tie-break: when two slugs have the same interaction count, the lower slug
// (lexicographic ascending) wins. Both drivers order by (count DESC, slug
// ASC) explicitly rather than relying on engine order.
package analytics

import "context"

// FollowRow is one subject in a most-followed ranking.
type FollowRow struct {
	SubjectID   int64
	FollowCount int64
}

// ContentRow is one un-enriched content item selected for a subject.
type ContentRow struct {
	SubjectID   int64
	Slug        string
	ContentType string
	Headline    string
}

// Store is the analytical collaborator. Failures here are essential: callers
// surface them as upstream errors instead of degrading.
type Store interface {
	TopFollowedPlayers(ctx context.Context, limit int) ([]FollowRow, error)
	TopFollowedTeams(ctx context.Context, limit int) ([]FollowRow, error)
	RelevantContent(ctx context.Context, limit int) ([]ContentRow, error)
	TeamContent(ctx context.Context, teamID int64, limit int) ([]ContentRow, error)
	PlayerContent(ctx context.Context, playerID int64, limit int) ([]ContentRow, error)
	Close() error
}

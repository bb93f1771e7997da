package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dugouthq/dugout/internal/domain/entity"
	"github.com/dugouthq/dugout/internal/domain/repository"
	"github.com/dugouthq/dugout/internal/infrastructure/analytics"
	"github.com/dugouthq/dugout/internal/infrastructure/genai"
	"github.com/dugouthq/dugout/internal/infrastructure/youtube"
)

// PlaceholderDescription replaces a generated description when the
// generation branch fails. One failing description never fails the batch.
const PlaceholderDescription = "Description unavailable."

// nameNotFound mirrors the original behavior when the stats API cannot
// resolve a subject id.
const nameNotFound = "Name Not Found"

const videosPerSubject = 3

// SportsDirectory resolves subject ids to display names (MLB Stats API).
type SportsDirectory interface {
	PlayerName(ctx context.Context, playerID int64) (string, error)
	TeamName(ctx context.Context, teamID int64) (string, error)
}

// VideoSearcher finds videos for a query (YouTube Data API).
type VideoSearcher interface {
	Search(ctx context.Context, query string, max int) ([]youtube.Result, error)
}

// ContentService builds the ranked, enriched read models. Fan-out to
// non-essential collaborators (name resolution, description generation,
// video search) is bounded by the batch size and fault-isolated per branch;
// only the analytical query itself is allowed to fail the request.
type ContentService struct {
	Analytics    analytics.Store
	Generator    genai.Generator
	Directory    SportsDirectory
	Videos       VideoSearcher
	Repo         repository.UserRepository
	Logger       *logrus.Logger
	DefaultLimit int
	MaxLimit     int
	BranchWait   time.Duration
}

func NewContentService(store analytics.Store, gen genai.Generator, dir SportsDirectory, vids VideoSearcher, repo repository.UserRepository, logger *logrus.Logger, defaultLimit, maxLimit int, branchWait time.Duration) *ContentService {
	return &ContentService{
		Analytics:    store,
		Generator:    gen,
		Directory:    dir,
		Videos:       vids,
		Repo:         repo,
		Logger:       logger,
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
		BranchWait:   branchWait,
	}
}

// clampLimit folds a client-supplied K into the configured bounds.
func (s *ContentService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.DefaultLimit
	}
	if limit > s.MaxLimit {
		return s.MaxLimit
	}
	return limit
}

// TopPlayers ranks players by distinct-interaction count and resolves their
// display names concurrently.
func (s *ContentService) TopPlayers(ctx context.Context, limit int) ([]entity.FollowedSubject, error) {
	rows, err := s.Analytics.TopFollowedPlayers(ctx, s.clampLimit(limit))
	if err != nil {
		s.Logger.WithError(err).Error("top players query failed")
		return nil, ErrUpstreamUnavailable
	}
	return s.resolveNames(ctx, rows, s.Directory.PlayerName), nil
}

// TopTeams is the team-side ranking.
func (s *ContentService) TopTeams(ctx context.Context, limit int) ([]entity.FollowedSubject, error) {
	rows, err := s.Analytics.TopFollowedTeams(ctx, s.clampLimit(limit))
	if err != nil {
		s.Logger.WithError(err).Error("top teams query failed")
		return nil, ErrUpstreamUnavailable
	}
	return s.resolveNames(ctx, rows, s.Directory.TeamName), nil
}

func (s *ContentService) resolveNames(ctx context.Context, rows []analytics.FollowRow, lookup func(context.Context, int64) (string, error)) []entity.FollowedSubject {
	out := make([]entity.FollowedSubject, len(rows))
	var wg sync.WaitGroup
	var degraded sync.Map
	for i, row := range rows {
		out[i] = entity.FollowedSubject{SubjectID: row.SubjectID, FollowCount: row.FollowCount, Name: nameNotFound}
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			branchCtx, cancel := context.WithTimeout(ctx, s.BranchWait)
			defer cancel()
			name, err := lookup(branchCtx, id)
			if err != nil {
				degraded.Store(id, err)
				return
			}
			out[i].Name = name
		}(i, row.SubjectID)
	}
	wg.Wait()
	s.logDegradation("name resolution", &degraded)
	return out
}

// RelevantContent returns the enriched most-relevant list.
func (s *ContentService) RelevantContent(ctx context.Context) ([]entity.ContentRow, error) {
	rows, err := s.Analytics.RelevantContent(ctx, s.DefaultLimit)
	if err != nil {
		s.Logger.WithError(err).Error("relevant content query failed")
		return nil, ErrUpstreamUnavailable
	}
	return s.enrich(ctx, rows), nil
}

// TeamContent returns the enriched list for one team.
func (s *ContentService) TeamContent(ctx context.Context, teamID int64) ([]entity.ContentRow, error) {
	rows, err := s.Analytics.TeamContent(ctx, teamID, s.DefaultLimit)
	if err != nil {
		s.Logger.WithError(err).WithField("team_id", teamID).Error("team content query failed")
		return nil, ErrUpstreamUnavailable
	}
	return s.enrich(ctx, rows), nil
}

// PlayerContent returns the enriched list for one player.
func (s *ContentService) PlayerContent(ctx context.Context, playerID int64) ([]entity.ContentRow, error) {
	rows, err := s.Analytics.PlayerContent(ctx, playerID, s.DefaultLimit)
	if err != nil {
		s.Logger.WithError(err).WithField("player_id", playerID).Error("player content query failed")
		return nil, ErrUpstreamUnavailable
	}
	return s.enrich(ctx, rows), nil
}

// enrich asks the generator for a one-sentence description of every row
// concurrently. Each branch carries its own timeout; a failed branch gets
// the placeholder and the batch completes once all branches settle.
func (s *ContentService) enrich(ctx context.Context, rows []analytics.ContentRow) []entity.ContentRow {
	out := make([]entity.ContentRow, len(rows))
	var wg sync.WaitGroup
	var degraded sync.Map
	for i, row := range rows {
		out[i] = entity.ContentRow{
			SubjectID:   row.SubjectID,
			Slug:        row.Slug,
			ContentType: row.ContentType,
			Headline:    row.Headline,
			Description: PlaceholderDescription,
		}
		wg.Add(1)
		go func(i int, row analytics.ContentRow) {
			defer wg.Done()
			branchCtx, cancel := context.WithTimeout(ctx, s.BranchWait)
			defer cancel()
			prompt := fmt.Sprintf("In one sentence, describe the MLB %s headlined %q for a fan news feed.", row.ContentType, row.Headline)
			text, err := s.Generator.Generate(branchCtx, prompt)
			if err != nil {
				degraded.Store(row.Slug, err)
				return
			}
			out[i].Description = text
		}(i, row)
	}
	wg.Wait()
	s.logDegradation("description generation", &degraded)
	return out
}

// Digest resolves the user's favorite team/player names and searches videos
// for each. Branches follow the same bulkhead policy: a failed name lookup
// or search drops that subject, never the digest.
func (s *ContentService) Digest(ctx context.Context, userID string) ([]entity.Video, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	type lookup struct {
		id   int64
		kind string
	}
	lookups := make([]lookup, 0, len(u.FavoriteTeams)+len(u.FavoritePlayers))
	for _, id := range u.FavoriteTeams {
		lookups = append(lookups, lookup{id: id, kind: "team"})
	}
	for _, id := range u.FavoritePlayers {
		lookups = append(lookups, lookup{id: id, kind: "player"})
	}
	if len(lookups) == 0 {
		return []entity.Video{}, nil
	}

	names := make([]string, len(lookups))
	var wg sync.WaitGroup
	var degraded sync.Map
	for i, l := range lookups {
		wg.Add(1)
		go func(i int, l lookup) {
			defer wg.Done()
			branchCtx, cancel := context.WithTimeout(ctx, s.BranchWait)
			defer cancel()
			var name string
			var err error
			if l.kind == "team" {
				name, err = s.Directory.TeamName(branchCtx, l.id)
			} else {
				name, err = s.Directory.PlayerName(branchCtx, l.id)
			}
			if err != nil {
				degraded.Store(l.id, err)
				return
			}
			names[i] = name
		}(i, l)
	}
	wg.Wait()

	videos := make([][]entity.Video, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			branchCtx, cancel := context.WithTimeout(ctx, s.BranchWait)
			defer cancel()
			results, err := s.Videos.Search(branchCtx, name+" MLB highlights", videosPerSubject)
			if err != nil {
				degraded.Store(name, err)
				return
			}
			vs := make([]entity.Video, 0, len(results))
			for _, r := range results {
				vs = append(vs, entity.Video{
					VideoID:    r.VideoID,
					Title:      r.Title,
					Thumbnail:  r.Thumbnail,
					ForSubject: name,
				})
			}
			videos[i] = vs
		}(i, name)
	}
	wg.Wait()
	s.logDegradation("digest", &degraded)

	out := make([]entity.Video, 0, len(lookups)*videosPerSubject)
	for _, vs := range videos {
		out = append(out, vs...)
	}
	return out, nil
}

// logDegradation records partial-degradation branches. Degradation is never
// surfaced to the caller.
func (s *ContentService) logDegradation(stage string, degraded *sync.Map) {
	count := 0
	degraded.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 0 {
		s.Logger.WithFields(logrus.Fields{"stage": stage, "branches": count}).Warn("partial degradation")
	}
}

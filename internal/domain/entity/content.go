package entity

// ContentRow is one entry of a ranked, enriched content list. Rows are
// computed per request from the analytical store and never persisted
// server-side.
type ContentRow struct {
	SubjectID   int64  `json:"subjectId"`
	Slug        string `json:"slug"`
	ContentType string `json:"contentType"` // article or video
	Headline    string `json:"headline"`
	Description string `json:"description,omitempty"`
}

// FollowedSubject is one entry of a most-followed ranking.
type FollowedSubject struct {
	SubjectID   int64  `json:"subjectId"`
	Name        string `json:"name"`
	FollowCount int64  `json:"followCount"`
}

// Video is a single video search result for the favorites digest.
type Video struct {
	VideoID    string `json:"videoId"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	ForSubject string `json:"forSubject"`
}

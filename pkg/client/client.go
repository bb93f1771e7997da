package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Client is the Go consumer of the API. Read endpoints are cached per
// session: the first call hits the network, repeats are served from the
// SessionCache until Reset. A cached payload that fails to decode is
// invalidated and refetched exactly once.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *SessionCache

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Cache:   NewSessionCache(),
	}
}

// envelope matches the server's response shape; only data matters here.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Session struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type FollowedSubject struct {
	SubjectID   int64  `json:"subjectId"`
	Name        string `json:"name"`
	FollowCount int64  `json:"followCount"`
}

type ContentRow struct {
	SubjectID   int64  `json:"subjectId"`
	Slug        string `json:"slug"`
	ContentType string `json:"contentType"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
}

type Video struct {
	VideoID    string `json:"videoId"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	ForSubject string `json:"forSubject"`
}

func (c *Client) setSession(s Session) {
	c.mu.Lock()
	c.accessToken = s.AccessToken
	c.refreshToken = s.RefreshToken
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// clearSession drops the token pair and every cached response. Called when
// the server rejects the session; the next authenticated call must start from
// a fresh login.
func (c *Client) clearSession() {
	c.mu.Lock()
	c.accessToken = ""
	c.refreshToken = ""
	c.mu.Unlock()
	c.Cache.Reset()
}

func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) (Session, error) {
	return c.postSession(ctx, "/api/register", map[string]string{
		"firstName": firstName, "lastName": lastName, "email": email, "password": password,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	return c.postSession(ctx, "/api/login", map[string]string{"email": email, "password": password})
}

func (c *Client) postSession(ctx context.Context, path string, body map[string]string) (Session, error) {
	var s Session
	if err := c.post(ctx, path, body, &s); err != nil {
		return Session{}, err
	}
	c.setSession(s)
	return s, nil
}

// RefreshAccess trades the stored refresh token for a new access token.
func (c *Client) RefreshAccess(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.post(ctx, "/api/token", map[string]string{"refreshToken": refresh}, &out); err != nil {
		return err
	}
	c.mu.Lock()
	c.accessToken = out.AccessToken
	c.mu.Unlock()
	return nil
}

// Logout revokes the refresh token server-side and drops all session state,
// cached responses included.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	err := c.post(ctx, "/api/logout", map[string]string{"refreshToken": refresh}, nil)
	c.clearSession()
	return err
}

func (c *Client) TopPlayers(ctx context.Context, limit int) ([]FollowedSubject, error) {
	var out struct {
		Players []FollowedSubject `json:"players"`
	}
	err := c.getCached(ctx, "/api/content/top-players", limitParams(limit), &out)
	return out.Players, err
}

func (c *Client) TopTeams(ctx context.Context, limit int) ([]FollowedSubject, error) {
	var out struct {
		Teams []FollowedSubject `json:"teams"`
	}
	err := c.getCached(ctx, "/api/content/top-teams", limitParams(limit), &out)
	return out.Teams, err
}

func (c *Client) RelevantContent(ctx context.Context) ([]ContentRow, error) {
	var out struct {
		Content []ContentRow `json:"content"`
	}
	err := c.getCached(ctx, "/api/content/relevant", nil, &out)
	return out.Content, err
}

func (c *Client) TeamContent(ctx context.Context, teamID int64) ([]ContentRow, error) {
	var out struct {
		Content []ContentRow `json:"content"`
	}
	err := c.getCached(ctx, "/api/content/team/"+strconv.FormatInt(teamID, 10), nil, &out)
	return out.Content, err
}

func (c *Client) PlayerContent(ctx context.Context, playerID int64) ([]ContentRow, error) {
	var out struct {
		Content []ContentRow `json:"content"`
	}
	err := c.getCached(ctx, "/api/content/player/"+strconv.FormatInt(playerID, 10), nil, &out)
	return out.Content, err
}

func (c *Client) Digest(ctx context.Context) ([]Video, error) {
	var out struct {
		Videos []Video `json:"videos"`
	}
	err := c.getCached(ctx, "/api/profile/digest", nil, &out)
	return out.Videos, err
}

func limitParams(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}

// cacheKey is the endpoint path plus canonically encoded params, so the same
// logical request always maps to the same entry.
func cacheKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

func (c *Client) getCached(ctx context.Context, path string, params url.Values, out any) error {
	key := cacheKey(path, params)
	if raw, ok := c.Cache.Get(key); ok {
		if err := json.Unmarshal(raw, out); err == nil {
			return nil
		}
		// Corrupted entry: treat as a miss, drop it, fall through to one fetch.
		c.Cache.Invalidate(key)
	}
	raw, err := c.get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	c.Cache.Set(key, raw)
	return nil
}

func (c *Client) get(ctx context.Context, pathAndQuery string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+pathAndQuery, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	raw, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.clearSession()
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env.Data, nil
}

// APIError carries the server's status and message for a failed call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

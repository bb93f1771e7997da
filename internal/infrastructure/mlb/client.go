// Package mlb is a thin read-only client for the public MLB Stats API. Only
// the fields the app consumes are decoded; the API itself stays an opaque
// collaborator.
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type person struct {
	FullName string `json:"fullName"`
}

type team struct {
	Name string `json:"name"`
}

// PlayerName resolves a player id to the player's full name.
func (c *Client) PlayerName(ctx context.Context, playerID int64) (string, error) {
	var parsed struct {
		People []person `json:"people"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/v1/people/%d", c.baseURL, playerID), &parsed); err != nil {
		return "", err
	}
	if len(parsed.People) == 0 {
		return "", fmt.Errorf("mlb: no person for id %d", playerID)
	}
	return parsed.People[0].FullName, nil
}

// TeamName resolves a team id to the team name.
func (c *Client) TeamName(ctx context.Context, teamID int64) (string, error) {
	var parsed struct {
		Teams []team `json:"teams"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/v1/teams/%d", c.baseURL, teamID), &parsed); err != nil {
		return "", err
	}
	if len(parsed.Teams) == 0 {
		return "", fmt.Errorf("mlb: no team for id %d", teamID)
	}
	return parsed.Teams[0].Name, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mlb: unexpected status %d for %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

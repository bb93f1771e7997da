package mlb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/people/660271", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"people": []map[string]any{{"id": 660271, "fullName": "Shohei Ohtani"}},
		})
	})
	mux.HandleFunc("/api/v1/people/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"people": []any{}})
	})
	mux.HandleFunc("/api/v1/teams/147", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"teams": []map[string]any{{"id": 147, "name": "New York Yankees"}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPlayerName(t *testing.T) {
	srv := statsServer(t)
	c := NewClient(srv.URL, 2*time.Second)

	name, err := c.PlayerName(context.Background(), 660271)
	require.NoError(t, err)
	assert.Equal(t, "Shohei Ohtani", name)
}

func TestPlayerNameEmptyResult(t *testing.T) {
	srv := statsServer(t)
	c := NewClient(srv.URL, 2*time.Second)

	_, err := c.PlayerName(context.Background(), 1)
	assert.Error(t, err)
}

func TestTeamName(t *testing.T) {
	srv := statsServer(t)
	c := NewClient(srv.URL, 2*time.Second)

	name, err := c.TeamName(context.Background(), 147)
	require.NoError(t, err)
	assert.Equal(t, "New York Yankees", name)
}

func TestUnexpectedStatus(t *testing.T) {
	srv := statsServer(t)
	c := NewClient(srv.URL, 2*time.Second)

	// Unrouted path returns 404 from the mux.
	_, err := c.TeamName(context.Background(), 999)
	assert.Error(t, err)
}

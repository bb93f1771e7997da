package genai

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

func geminiServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Gemini) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewGemini(srv.URL, "gemini-1.5-flash", "test-key", 2*time.Second)
}

func TestGenerateParsesCandidate(t *testing.T) {
	var gotPath string
	_, g := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "describe this", req.Contents[0].Parts[0].Text)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "a one sentence description"}}}},
			},
		})
	})

	text, err := g.Generate(context.Background(), "describe this")
	require.NoError(t, err)
	assert.Equal(t, "a one sentence description", text)
	assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", gotPath)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	_, g := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := g.Generate(context.Background(), "describe this")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateNon200(t *testing.T) {
	_, g := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := g.Generate(context.Background(), "describe this")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBreakerOpensUnderSustainedFailure(t *testing.T) {
	_, g := geminiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Ten straight failures satisfy the trip threshold.
	for i := 0; i < 10; i++ {
		_, err := g.Generate(context.Background(), "describe this")
		require.Error(t, err)
	}

	_, err := g.Generate(context.Background(), "describe this")
	require.Error(t, err)
	// Once open, the breaker rejects without touching the network.
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

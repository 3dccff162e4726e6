package agent

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsdeck/internal/domain"
	"opsdeck/internal/infra/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.AgentConfig{Name: "test-agent", BaseURL: baseURL}, testLogger())
}

func TestQueryStreamsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/query/stream", r.URL.Path)

		var req domain.QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "status?", req.Prompt)
		assert.Equal(t, "uid-7", req.SessionID)

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"delta\":\"pong\"}\n\n")
		io.WriteString(w, "data: {\"done\":true,\"uid\":\"uid-7\",\"agent_used\":\"coordinator\"}\n\n")
	}))
	defer srv.Close()

	ch, err := newTestClient(srv.URL).Query(context.Background(), domain.QueryRequest{
		Prompt:    "status?",
		SessionID: "uid-7",
	})
	require.NoError(t, err)

	var deltas []domain.StreamDelta
	for d := range ch {
		deltas = append(deltas, d)
	}

	require.Len(t, deltas, 2)
	assert.Equal(t, "pong", deltas[0].Content)
	assert.True(t, deltas[1].Done)
	require.NotNil(t, deltas[1].Meta)
	assert.Equal(t, "coordinator", deltas[1].Meta.AgentUsed)
}

func TestQueryNonSuccessStatusIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream model exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Query(context.Background(), domain.QueryRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream model exploded")
}

func TestQueryConnectionRefused(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Query(context.Background(), domain.QueryRequest{Prompt: "hi"})
	require.Error(t, err)
}

func TestQuerySendsAuthHeader(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewClient(config.AgentConfig{BaseURL: srv.URL, APIKey: "tok-1"}, testLogger())
	ch, err := c.Query(context.Background(), domain.QueryRequest{Prompt: "hi"})
	require.NoError(t, err)
	for range ch {
	}

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

// Package agent is the HTTP adapter for the streaming agent backend.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"opsdeck/internal/domain"
	"opsdeck/internal/infra/config"
	"opsdeck/internal/infra/tracer"
)

// Compile-time interface assertion.
var _ domain.AgentClient = (*Client)(nil)

// Client talks to the agent backend's SSE streaming endpoint.
type Client struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a client with configured timeouts.
func NewClient(cfg config.AgentConfig, logger *slog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8400"
	}
	name := cfg.Name
	if name == "" {
		name = "agent"
	}

	return &Client{
		name:    name,
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  NewHTTPClient(cfg),
		logger:  logger,
	}
}

// Name implements domain.AgentClient.
func (c *Client) Name() string { return c.name }

// Query implements domain.AgentClient. It POSTs the prompt and returns a
// channel of deltas parsed from the SSE response. An error here is a
// transport failure before any data: the stream never started.
func (c *Client) Query(ctx context.Context, req domain.QueryRequest) (<-chan domain.StreamDelta, error) {
	ctx, span := tracer.StartSpan(ctx, "agent.query",
		trace.WithAttributes(
			tracer.StringAttr("agent.name", c.name),
			tracer.IntAttr("agent.prompt_len", len(req.Prompt)),
		),
	)
	defer span.End()

	body, err := json.Marshal(req)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query/stream", bytes.NewReader(body))
	if err != nil {
		tracer.RecordError(span, err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, fmt.Errorf("http request: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4*1024))
		httpResp.Body.Close()
		err := fmt.Errorf("agent API error %d: %s", httpResp.StatusCode, strings.TrimSpace(string(msg)))
		tracer.RecordError(span, err)
		return nil, err
	}

	c.logger.Debug("agent stream opened", "agent", c.name, "uid", req.SessionID, "request_id", requestID)
	tracer.SetOK(span)

	return parseSSEStream(ctx, httpResp.Body), nil
}

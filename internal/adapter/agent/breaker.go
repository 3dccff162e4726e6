package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"opsdeck/internal/domain"
	"opsdeck/internal/infra/config"
)

// Default circuit breaker settings.
const (
	defaultCBMaxFailures uint32        = 5
	defaultCBTimeout     time.Duration = 30 * time.Second
	defaultCBInterval    time.Duration = 60 * time.Second
)

// CircuitBreakerClient wraps an AgentClient with circuit breaker protection.
// When stream initiation fails repeatedly the circuit opens and subsequent
// submissions fail fast instead of hanging on a dead backend. Failures
// after the stream opened arrive through the delta channel and do not trip
// the breaker.
type CircuitBreakerClient struct {
	inner   domain.AgentClient
	breaker *gobreaker.CircuitBreaker[<-chan domain.StreamDelta]
	logger  *slog.Logger
}

// Compile-time interface assertion.
var _ domain.AgentClient = (*CircuitBreakerClient)(nil)

// NewCircuitBreakerClient wraps inner with a circuit breaker.
// If cfg is zero-valued, sensible defaults are used.
func NewCircuitBreakerClient(inner domain.AgentClient, cfg config.BreakerConfig, logger *slog.Logger) *CircuitBreakerClient {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultCBMaxFailures
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultCBTimeout
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultCBInterval
	}

	cb := gobreaker.NewCircuitBreaker[<-chan domain.StreamDelta](gobreaker.Settings{
		Name:        "agent:" + inner.Name(),
		MaxRequests: 1, // allow 1 probe in half-open state
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &CircuitBreakerClient{
		inner:   inner,
		breaker: cb,
		logger:  logger,
	}
}

// Query implements domain.AgentClient. Stream initiation is routed through
// the circuit breaker.
func (c *CircuitBreakerClient) Query(ctx context.Context, req domain.QueryRequest) (<-chan domain.StreamDelta, error) {
	ch, err := c.breaker.Execute(func() (<-chan domain.StreamDelta, error) {
		return c.inner.Query(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("agent %q circuit open: %w", c.inner.Name(), err)
		}
		return nil, err
	}
	return ch, nil
}

// Name implements domain.AgentClient.
func (c *CircuitBreakerClient) Name() string { return c.inner.Name() }

// State returns the current circuit breaker state for monitoring.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.breaker.State()
}

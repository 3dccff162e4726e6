package agent

import (
	"net"
	"net/http"
	"time"

	"opsdeck/internal/infra/config"
)

// Default client timeouts: quick connect, long response (streams stay open
// for the whole exchange).
const (
	defaultConnTimeout = 10 * time.Second
	defaultRespTimeout = 120 * time.Second
)

// NewHTTPClient creates an *http.Client for the agent backend. The overall
// client Timeout is deliberately unset: it would cut off long-lived SSE
// bodies. Per-phase timeouts on the transport bound connect and headers.
func NewHTTPClient(cfg config.AgentConfig) *http.Client {
	connTimeout := cfg.ConnTimeout
	if connTimeout == 0 {
		connTimeout = defaultConnTimeout
	}
	respTimeout := cfg.RespTimeout
	if respTimeout == 0 {
		respTimeout = defaultRespTimeout
	}

	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   connTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: respTimeout,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   5,
			IdleConnTimeout:       120 * time.Second,
			ForceAttemptHTTP2:     true,
		},
	}
}

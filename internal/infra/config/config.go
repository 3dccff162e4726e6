// Package config loads and validates the opsdeck YAML configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"opsdeck/internal/domain"
)

// Config is the top-level application configuration.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	Overlay OverlayConfig `yaml:"overlay"`
	Logger  LoggerConfig  `yaml:"logger"`
	Tracer  TracerConfig  `yaml:"tracer"`
}

// AgentConfig holds settings for the streaming agent backend.
type AgentConfig struct {
	Name        string        `yaml:"name"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	ConnTimeout time.Duration `yaml:"conn_timeout"`
	RespTimeout time.Duration `yaml:"resp_timeout"`
	Breaker     BreakerConfig `yaml:"breaker"`
}

// BreakerConfig configures the circuit breaker guarding stream initiation.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures uint32 `yaml:"max_failures"`
	// Timeout is how long the circuit stays open before transitioning to half-open.
	Timeout time.Duration `yaml:"timeout"`
	// Interval is the cyclic period of the closed state for clearing failure counts.
	Interval time.Duration `yaml:"interval"`
}

// OverlayConfig holds presentation settings for the chat overlay.
type OverlayConfig struct {
	ToggleKey    string               `yaml:"toggle_key"`
	BadgeLabel   string               `yaml:"badge_label"`
	PanelWidth   int                  `yaml:"panel_width"`
	QuickActions []domain.QuickAction `yaml:"quick_actions"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	Output string `yaml:"output"` // stdout, stderr, or a file path
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"` // stdout, noop
}

// Defaults returns a config with sensible defaults for local use.
func Defaults() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "grafana-agent",
			BaseURL:     "http://localhost:8400",
			ConnTimeout: 10 * time.Second,
			RespTimeout: 120 * time.Second,
			Breaker: BreakerConfig{
				MaxFailures: 5,
				Timeout:     30 * time.Second,
				Interval:    60 * time.Second,
			},
		},
		Overlay: OverlayConfig{
			ToggleKey:    "ctrl+g",
			BadgeLabel:   "💬 Copilot",
			PanelWidth:   64,
			QuickActions: domain.DefaultQuickActions(),
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "opsdeck.log",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "noop",
		},
	}
}

// Load reads a YAML config file and applies env var overrides. A missing
// file is not an error: defaults plus env overrides are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			return cfg, Validate(cfg)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// ${VAR} references in the file resolve against the environment.
	expanded := os.Expand(string(data), os.Getenv)
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)
	return cfg, Validate(cfg)
}

// ApplyEnvOverrides maps OPSDECK_* env vars to config fields. Env wins over
// file values so containerized deploys can override without editing YAML.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPSDECK_AGENT_URL"); v != "" {
		cfg.Agent.BaseURL = v
	}
	if v := os.Getenv("OPSDECK_AGENT_API_KEY"); v != "" {
		cfg.Agent.APIKey = v
	}
	if v := os.Getenv("OPSDECK_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("OPSDECK_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
		if cfg.Tracer.Exporter == "" || cfg.Tracer.Exporter == "noop" {
			cfg.Tracer.Exporter = "stdout"
		}
	}
}

// Validate checks the loaded configuration for obvious mistakes.
func Validate(cfg *Config) error {
	if cfg.Agent.BaseURL == "" {
		return fmt.Errorf("agent.base_url is required")
	}
	if !strings.HasPrefix(cfg.Agent.BaseURL, "http://") && !strings.HasPrefix(cfg.Agent.BaseURL, "https://") {
		return fmt.Errorf("agent.base_url must be an http(s) URL, got %q", cfg.Agent.BaseURL)
	}
	switch cfg.Logger.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logger.format must be text or json, got %q", cfg.Logger.Format)
	}
	if cfg.Overlay.PanelWidth < 0 {
		return fmt.Errorf("overlay.panel_width must not be negative")
	}
	for i, qa := range cfg.Overlay.QuickActions {
		if strings.TrimSpace(qa.PromptTemplate) == "" {
			return fmt.Errorf("overlay.quick_actions[%d]: prompt is required", i)
		}
	}
	return nil
}

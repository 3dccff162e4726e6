package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"opsdeck/internal/adapter/agent"
	"opsdeck/internal/adapter/tui/overlay"
	"opsdeck/internal/infra/config"
	"opsdeck/internal/infra/logger"
	"opsdeck/internal/infra/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config.yaml", "path to the config file")
	agentURL := flag.String("url", "", "agent base URL (overrides config)")
	flag.Parse()

	// Local .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if *agentURL != "" {
		cfg.Agent.BaseURL = *agentURL
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logCloser()

	ctx := context.Background()
	tracerShutdown, err := tracer.Setup(ctx, cfg.Tracer)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	defer tracerShutdown(ctx)

	client := agent.NewClient(cfg.Agent, log)
	guarded := agent.NewCircuitBreakerClient(client, cfg.Agent.Breaker, log)

	model := overlay.Mount(newDashboard(), overlay.Options{
		Agent:        guarded,
		Logger:       log,
		ToggleKey:    cfg.Overlay.ToggleKey,
		BadgeLabel:   cfg.Overlay.BadgeLabel,
		PanelWidth:   cfg.Overlay.PanelWidth,
		QuickActions: cfg.Overlay.QuickActions,
	})
	defer overlay.Unmount()

	log.Info("starting opsdeck",
		"agent", cfg.Agent.Name,
		"base_url", cfg.Agent.BaseURL,
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"worldedit/internal/config"
	"worldedit/internal/game"
	"worldedit/internal/logs"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.DefaultPath
	if p := os.Getenv("WORLDEDIT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadEditor(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	text := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	l := logs.New(cfg.LogCapacity, cfg.SlogLevel(), text)
	log := l.Logger()
	slog.SetDefault(log)

	log.Info("world editor starting",
		"scenes", cfg.ScenesDir,
		"models", cfg.ModelsDir,
		"toggle", cfg.RunToggleKey,
		"workers", cfg.ScriptWorkers)

	game.New(cfg, l).Run(ctx)

	log.Info("world editor stopped")
	return nil
}

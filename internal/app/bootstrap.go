package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"hft_go/internal/infra"
	"hft_go/internal/storage"
)

// Bootstrap orchestrates the startup sequence shared by the live and
// backtest binaries: env, config, logger, data dir, run store.
type Bootstrap struct {
	Config *infra.Config
	Store  *storage.RunStore
}

// NewBootstrap creates an empty Bootstrap.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads configuration and opens the run store.
func (b *Bootstrap) Initialize(configPath string) error {
	// .env is optional; the config file is authoritative.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err
	}
	b.Config = cfg

	slog.SetDefault(infra.NewLogger(cfg.Logging.Level))
	slog.Info("BOOTSTRAP",
		slog.String("app", cfg.App.Name),
		slog.String("symbol", cfg.Feed.Symbol))

	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	store, err := storage.NewRunStore(filepath.Join(dataDir, "runs.db"))
	if err != nil {
		return err
	}
	b.Store = store

	return store.UpsertMetadata(context.Background(),
		"last_session_start", cfg.Feed.Symbol, time.Now().Unix())
}

// Close releases bootstrap-owned resources.
func (b *Bootstrap) Close() {
	if b.Store != nil {
		b.Store.Close()
	}
}

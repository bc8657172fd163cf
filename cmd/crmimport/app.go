package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/crmimport/internal/config"
	"github.com/JonMunkholm/crmimport/internal/core"
	"github.com/JonMunkholm/crmimport/internal/logging"
	"github.com/JonMunkholm/crmimport/internal/store"
)

// app holds the wired dependencies shared by serve, import and preview.
type app struct {
	cfg      *config.Config
	store    store.ContactStore
	importer *core.Importer
}

func (a *app) Close() {
	a.store.Close()
}

// setup loads configuration, installs the logger writing to logOut, opens
// the store and seeds the contact collection from it.
func setup(ctx context.Context, opts *rootOptions, logOut io.Writer) (*app, error) {
	loadEnvFile(opts.envFile)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(logOut, cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	existing, err := st.List(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	im := core.NewImporter(st, core.NewCollection(existing...), core.ImporterConfig{
		BatchSize:   cfg.Import.BatchSize,
		MaxFileSize: cfg.Import.MaxFileSize,
		Timeout:     cfg.Import.Timeout,
	})
	slog.Info("contacts loaded", "count", len(existing))

	return &app{cfg: cfg, store: st, importer: im}, nil
}

// loadEnvFile applies path over the process environment when it exists.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		slog.Debug("no env file found, using environment variables", "path", path)
		return
	}
	if err := godotenv.Overload(path); err != nil {
		slog.Warn("failed to load env file", "path", path, "error", err)
		return
	}
	slog.Debug("loaded env file", "path", path)
}

func openStore(ctx context.Context, cfg *config.Config) (store.ContactStore, error) {
	if cfg.Database.InMemory() {
		slog.Warn("DATABASE_URL not set, contacts are kept in memory")
		return store.NewMemory(), nil
	}

	pg, err := store.Open(ctx, cfg.Database.URL, store.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}

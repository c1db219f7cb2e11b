package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/rspecgen/internal/catalog"
	"github.com/vk/rspecgen/internal/ctxlog"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	config  *Config
	logger  *slog.Logger
	catalog *catalog.Catalog
}

// NewApp is the constructor for the main application. Logs go to logW; the
// document itself is written by Generate. The catalog is loaded here, so a
// broken catalog fails before any request is compiled.
func NewApp(logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(ctx, cfg.CatalogPath)
	} else {
		cat, err = catalog.Default(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Debug("Catalog loaded.", "profiles", cat.Names())

	return &App{config: cfg, logger: logger, catalog: cat}, nil
}

// Catalog returns the loaded catalog.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Profile resolves the configured profile.
func (a *App) Profile() (*catalog.Profile, error) {
	return a.catalog.Profile(a.config.Profile)
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/planegraph/internal/config"
	"github.com/specialistvlad/planegraph/internal/ctxlog"
	"github.com/specialistvlad/planegraph/internal/registry"
)

// App encapsulates the application's logger, its loaded manifests and its
// frozen registry.
type App struct {
	ctx      context.Context
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
}

// New builds an App: the logger writes to outW, module manifests and the
// configured manifest paths are loaded through loader, and the registry is
// populated, validated and frozen. With no modules, the core modules are used.
func New(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}

	// Load every manifest into the format-agnostic model first.
	model, err := loader.Load(ctx, cfg.ManifestPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifests: %w", err)
	}
	for _, mod := range modules {
		filename, src := mod.Manifest()
		if len(src) == 0 {
			continue
		}
		if err := loader.LoadSource(ctx, model, filename, src); err != nil {
			return nil, fmt.Errorf("failed to load module manifest: %w", err)
		}
	}
	logger.Debug("Manifests loaded and translated into unified model.", "operations", len(model.Operations))

	reg := registry.New(registry.WithLogger(logger))
	reg.RegisterModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.PopulateDefinitionsFromModel(model); err != nil {
		return nil, fmt.Errorf("failed to populate registry: %w", err)
	}
	logger.Debug("Registry definitions populated from manifest model.")

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	reg.Freeze()
	logger.Debug("Registry validation passed.")

	return &App{
		ctx:      ctx,
		logger:   logger,
		registry: reg,
		model:    model,
	}, nil
}

// Registry returns the application's frozen registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Context returns a background context carrying the application's logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Model returns the manifest model the registry was populated from.
func (a *App) Model() *config.Model {
	return a.model
}

// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.trai.ch/kiln/internal/adapters/compiler"
	"go.trai.ch/kiln/internal/adapters/web"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// RunOptions carries CLI flag overrides applied on top of the loaded
// configuration.
type RunOptions struct {
	// ConfigDir is the directory holding kiln.yaml. Defaults to ".".
	ConfigDir string
	// Force recompiles everything, bypassing staleness checks.
	Force bool
	// Debug enables per-decision logging.
	Debug bool
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	ledger       ports.ImportLedger
	hasher       ports.Fingerprinter
	logger       ports.Logger
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	ledger ports.ImportLedger,
	hasher ports.Fingerprinter,
	logger ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		ledger:       ledger,
		hasher:       hasher,
		logger:       logger,
		tracer:       tracer,
	}
}

// Serve runs the HTTP server until ctx is canceled.
func (a *App) Serve(ctx context.Context, opts RunOptions) error {
	settings, eng, err := a.bootstrap(opts)
	if err != nil {
		return err
	}

	handler := web.NewHandler(eng, settings.Layout, nil, a.logger)
	server := web.NewServer(settings.Listen, handler, a.logger)
	if err := server.Run(ctx); err != nil {
		return err
	}
	eng.Wait()
	return nil
}

// Build precompiles every source under the source root. Sources that are
// already fresh are reported as cache hits. Returns ErrBuildFailed when any
// source fails to compile.
func (a *App) Build(ctx context.Context, opts RunOptions) error {
	settings, eng, err := a.bootstrap(opts)
	if err != nil {
		return err
	}

	sources, err := listSources(settings.Layout)
	if err != nil {
		return err
	}

	var failed int
	for _, source := range sources {
		if err := a.buildOne(ctx, eng, settings.Layout, source); err != nil {
			failed++
		}
	}
	eng.Wait()

	if err := a.tracer.Close(); err != nil {
		a.logger.Error(err)
	}
	if failed > 0 {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrBuildFailed, ""), "failed", failed), "total", len(sources))
	}
	a.logger.Info("build complete", "sources", len(sources))
	return nil
}

// bootstrap loads settings, applies flag overrides, and assembles the engine.
func (a *App) bootstrap(opts RunOptions) (*domain.Settings, *resolver.Engine, error) {
	dir := opts.ConfigDir
	if dir == "" {
		dir = "."
	}
	settings, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	settings.Force = settings.Force || opts.Force
	settings.Debug = settings.Debug || opts.Debug
	if s, ok := a.logger.(interface{ SetDebug(bool) }); ok {
		s.SetDebug(settings.Debug)
	}

	comp := compiler.New(settings.Layout.SourceExt)
	eng := resolver.New(comp, a.ledger, a.hasher, a.logger, *settings)
	return settings, eng, nil
}

func (a *App) buildOne(ctx context.Context, eng *resolver.Engine, layout domain.Layout, source string) error {
	rel, err := filepath.Rel(layout.SourceRoot, source)
	if err != nil {
		rel = source
	}

	_, vertex := a.tracer.Record(ctx, "compile "+rel)
	defer vertex.End()

	output, err := layout.OutputFor(source)
	if err != nil {
		vertex.RecordError(err)
		return err
	}

	res, err := eng.Resolve(ctx, source, output)
	if err != nil {
		vertex.RecordError(err)
		a.logger.Error(err, "source", rel)
		return err
	}

	switch res.Action {
	case resolver.ActionFailed:
		err := res.Diag
		vertex.RecordError(err)
		a.logger.Error(err, "source", rel)
		return err
	case resolver.ActionServedCache:
		vertex.Cached()
	case resolver.ActionRecompiled:
		_, _ = fmt.Fprintf(vertex, "wrote %s\n", output)
	}
	return nil
}

// listSources walks the source root collecting compilable files.
func listSources(layout domain.Layout) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(layout.SourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == layout.SourceExt {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, "source root does not exist"), "path", layout.SourceRoot)
		}
		return nil, zerr.Wrap(err, "failed to scan source root")
	}
	return sources, nil
}

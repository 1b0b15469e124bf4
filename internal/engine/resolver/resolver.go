// Package resolver implements the recompilation decision engine: given a
// source and its derived artifact, decide between serving the cached artifact
// and recompiling, execute the chosen path, and keep the import ledger
// current across recompiles.
package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Action reports which path a resolution took.
type Action string

const (
	// ActionServedCache indicates the cached artifact was still valid.
	ActionServedCache Action = "served-cache"
	// ActionRecompiled indicates the source was recompiled.
	ActionRecompiled Action = "recompiled"
	// ActionFailed indicates the compiler rejected the source; Text carries a
	// diagnostic payload instead of compiled output.
	ActionFailed Action = "failed"
)

// Resolution is the outcome of a resolve. Text is always servable: compiled
// output, cached output, or an inert diagnostic.
type Resolution struct {
	Action Action
	Text   string
	Diag   *domain.CompileError
}

// Engine decides compile-vs-serve-cached per request. Safe for concurrent
// use. Without Coalesce, two simultaneous requests for a stale source may
// both recompile; each serves its own fresh result and the last artifact
// write wins, so the race duplicates work but never corrupts a response.
type Engine struct {
	compiler ports.Compiler
	ledger   ports.ImportLedger
	hasher   ports.Fingerprinter
	logger   ports.Logger
	settings domain.Settings

	flight   singleflight.Group
	prints   *fingerprintCache
	persists sync.WaitGroup
}

// New creates an Engine.
func New(
	compiler ports.Compiler,
	ledger ports.ImportLedger,
	hasher ports.Fingerprinter,
	logger ports.Logger,
	settings domain.Settings,
) *Engine {
	return &Engine{
		compiler: compiler,
		ledger:   ledger,
		hasher:   hasher,
		logger:   logger,
		settings: settings,
		prints:   newFingerprintCache(),
	}
}

// Resolve serves the artifact for source, recompiling if needed.
//
// Staleness uses strict greater-than on modification times: equal timestamps
// are "not stale". On filesystems with coarse timestamp resolution an edit
// landing in the same second as the previous compile is therefore missed;
// the content check mode avoids this at the cost of hashing per request.
func (e *Engine) Resolve(ctx context.Context, source, output string) (Resolution, error) {
	if !e.settings.Coalesce {
		return e.resolve(ctx, source, output)
	}

	v, err, shared := e.flight.Do(source, func() (any, error) {
		return e.resolve(ctx, source, output)
	})
	if err != nil {
		return Resolution{}, err
	}
	if shared {
		e.logger.Debug("resolution shared across concurrent requests", "source", source)
	}
	return v.(Resolution), nil
}

func (e *Engine) resolve(ctx context.Context, source, output string) (Resolution, error) {
	if e.settings.Force || e.settings.Response {
		e.logger.Debug("recompiling", "source", source, "reason", "always-recompile mode")
		return e.recompile(ctx, source, output)
	}

	imports, known := e.ledger.Lookup(source)
	if !known {
		// Never compiled since process start (or the last compile failed).
		// An artifact left on disk by a previous run is not trusted: its
		// timestamps cannot prove the import set is still accurate.
		e.logger.Debug("recompiling", "source", source, "reason", "no import record")
		return e.recompile(ctx, source, output)
	}

	stale, reason, err := e.stale(source, output, imports)
	if err != nil {
		return Resolution{}, err
	}
	if stale {
		e.logger.Debug("recompiling", "source", source, "reason", reason)
		return e.recompile(ctx, source, output)
	}

	data, err := os.ReadFile(output) //nolint:gosec // Derived from the configured layout
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Artifact vanished between the check and the read.
			return e.recompile(ctx, source, output)
		}
		return Resolution{}, zerr.With(zerr.Wrap(err, "failed to read cached output"), "path", output)
	}

	e.logger.Debug("serving cached output", "source", source)
	return Resolution{Action: ActionServedCache, Text: string(data)}, nil
}

// stale reports whether the artifact no longer reflects source or any of its
// recorded imports. reason is for decision logging.
func (e *Engine) stale(source, output string, imports []string) (bool, string, error) {
	outInfo, err := os.Stat(output)
	if errors.Is(err, fs.ErrNotExist) {
		return true, "output missing", nil
	}
	if err != nil {
		return false, "", zerr.With(zerr.Wrap(err, "failed to stat output"), "path", output)
	}

	if e.settings.Check == domain.CheckContent {
		return e.staleByContent(source, imports)
	}
	return e.staleByModtime(source, outInfo, imports)
}

func (e *Engine) staleByModtime(source string, outInfo os.FileInfo, imports []string) (bool, string, error) {
	srcInfo, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) {
		return false, "", zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "source removed"), "path", source)
	}
	if err != nil {
		return false, "", zerr.With(zerr.Wrap(err, "failed to stat source"), "path", source)
	}

	if srcInfo.ModTime().After(outInfo.ModTime()) {
		return true, "source newer than output", nil
	}

	for _, imp := range imports {
		info, err := os.Stat(imp)
		if err != nil {
			// A missing or unreadable import is itself a signal of drift.
			return true, "import unreadable: " + imp, nil
		}
		if info.ModTime().After(outInfo.ModTime()) {
			return true, "import newer than output: " + imp, nil
		}
	}
	return false, "", nil
}

func (e *Engine) staleByContent(source string, imports []string) (bool, string, error) {
	recorded, ok := e.prints.lookup(source)
	if !ok {
		return true, "no fingerprint record", nil
	}

	for _, p := range append([]string{source}, imports...) {
		want, ok := recorded[p]
		if !ok {
			return true, "no fingerprint for " + p, nil
		}
		got, err := e.hasher.Fingerprint(p)
		if err != nil || got != want {
			return true, "content changed: " + p, nil
		}
	}
	return false, "", nil
}

// recompile executes the compile path: clear ledger state, compile, record
// the fresh import set, and persist the artifact in the background.
func (e *Engine) recompile(ctx context.Context, source, output string) (Resolution, error) {
	// Clear before compiling so a crash mid-compile leaves "unknown" state,
	// never stale trust in an outdated import set.
	e.ledger.Clear(source)
	e.prints.clear(source)

	data, err := os.ReadFile(source) //nolint:gosec // Derived from the configured layout
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Resolution{}, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "cannot read source"), "path", source)
		}
		return Resolution{}, zerr.With(zerr.Wrap(err, "failed to read source"), "path", source)
	}

	// The ledger and artifact are shared resources; an aborted request must
	// not abort the compile that maintains them.
	res, err := e.compiler.Compile(context.WithoutCancel(ctx), source, string(data), domain.CompileOptions{
		IncludePaths: e.settings.IncludePaths,
		Style:        e.settings.Style,
	})
	if err != nil {
		var ce *domain.CompileError
		if errors.As(err, &ce) {
			// Ledger stays cleared and the previous artifact stays on disk:
			// a transient bad edit must not destroy the last good output.
			e.logger.Info("compile failed", "source", source, "error", ce.Error())
			return Resolution{Action: ActionFailed, Text: ce.Diagnostic(), Diag: ce}, nil
		}
		return Resolution{}, zerr.With(zerr.Wrap(err, "compiler failure"), "source", source)
	}

	e.ledger.Record(source, res.Includes)
	if e.settings.Check == domain.CheckContent {
		e.recordFingerprints(source, res.Includes)
	}

	if !e.settings.Response {
		// Fire-and-forget: the response is served from the in-memory text,
		// the artifact write races behind it and a failure only logs. The
		// next request's output-existence check resolves any gap.
		e.persists.Add(1)
		go func() {
			defer e.persists.Done()
			e.persist(output, res.Output)
		}()
	}

	e.logger.Debug("recompiled", "source", source, "imports", len(res.Includes))
	return Resolution{Action: ActionRecompiled, Text: res.Output}, nil
}

func (e *Engine) recordFingerprints(source string, includes []string) {
	prints := make(map[string]uint64, len(includes)+1)
	for _, p := range append([]string{source}, includes...) {
		h, err := e.hasher.Fingerprint(p)
		if err != nil {
			// Leave the entry incomplete; the next request treats the
			// missing fingerprint as drift and recompiles.
			e.logger.Error(err, "source", source)
			continue
		}
		prints[p] = h
	}
	e.prints.record(source, prints)
}

func (e *Engine) persist(output, text string) {
	if err := os.MkdirAll(filepath.Dir(output), domain.DirPerm); err != nil {
		e.logger.Error(zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", output))
		return
	}
	if err := os.WriteFile(output, []byte(text), domain.FilePerm); err != nil { //nolint:gosec // Artifacts are world-readable
		e.logger.Error(zerr.With(zerr.Wrap(err, "failed to persist output"), "path", output))
	}
}

// Wait blocks until all in-flight artifact writes have finished. Batch builds
// call this before exiting so no write is lost to process teardown.
func (e *Engine) Wait() {
	e.persists.Wait()
}

package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/ledger"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// recordingTracer captures vertex lifecycles for assertions.
type recordingTracer struct {
	names  []string
	errs   []error
	cached int
}

func (r *recordingTracer) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.names = append(r.names, name)
	return ctx, &recordingVertex{tracer: r}
}

func (r *recordingTracer) Close() error { return nil }

type recordingVertex struct {
	tracer *recordingTracer
	err    error
}

func (v *recordingVertex) Write(p []byte) (int, error) { return len(p), nil }
func (v *recordingVertex) RecordError(err error)       { v.err = err }
func (v *recordingVertex) Cached()                     { v.tracer.cached++ }
func (v *recordingVertex) End() {
	if v.err != nil {
		v.tracer.errs = append(v.tracer.errs, v.err)
	}
}

func newApp(tracer ports.Tracer) *app.App {
	log := logger.New()
	log.SetOutput(io.Discard)
	loader := &config.FileConfigLoader{Filename: domain.KilnFileName}
	return app.New(loader, ledger.New(), fs.NewHasher(), log, tracer)
}

// scaffold writes a kiln.yaml plus sources into a temp dir.
func scaffold(t *testing.T, sources map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	cfg := "source_root: styles\noutput_root: public/css\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.KilnFileName), []byte(cfg), 0o600))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "styles"), 0o750))
	for name, content := range sources {
		path := filepath.Join(dir, "styles", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func TestBuild_CompilesAllSources(t *testing.T) {
	dir := scaffold(t, map[string]string{
		"main.kln":         "body { color: red; }\n",
		"nested/admin.kln": "h1 { font-weight: bold; }\n",
	})

	tracer := &recordingTracer{}
	a := newApp(tracer)

	err := a.Build(context.Background(), app.RunOptions{ConfigDir: dir})
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(dir, "public", "css", "main.css"))
	require.NoError(t, err)
	assert.Equal(t, "body { color: red; }\n", string(out))

	out, err = os.ReadFile(filepath.Join(dir, "public", "css", "nested", "admin.css"))
	require.NoError(t, err)
	assert.Equal(t, "h1 { font-weight: bold; }\n", string(out))

	assert.Len(t, tracer.names, 2)
	assert.Empty(t, tracer.errs)
}

func TestBuild_SecondRunHitsCache(t *testing.T) {
	dir := scaffold(t, map[string]string{"main.kln": "body { }\n"})

	tracer := &recordingTracer{}
	a := newApp(tracer)

	require.NoError(t, a.Build(context.Background(), app.RunOptions{ConfigDir: dir}))
	require.NoError(t, a.Build(context.Background(), app.RunOptions{ConfigDir: dir}))

	assert.Equal(t, 1, tracer.cached)
}

func TestBuild_ForceRecompilesFreshSources(t *testing.T) {
	dir := scaffold(t, map[string]string{"main.kln": "body { }\n"})

	tracer := &recordingTracer{}
	a := newApp(tracer)

	require.NoError(t, a.Build(context.Background(), app.RunOptions{ConfigDir: dir}))
	require.NoError(t, a.Build(context.Background(), app.RunOptions{ConfigDir: dir, Force: true}))

	assert.Zero(t, tracer.cached)
}

func TestBuild_CompileErrorFailsBuild(t *testing.T) {
	dir := scaffold(t, map[string]string{
		"ok.kln":     "body { }\n",
		"broken.kln": "@import \"ghost\";\n",
	})

	tracer := &recordingTracer{}
	a := newApp(tracer)

	err := a.Build(context.Background(), app.RunOptions{ConfigDir: dir})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.Len(t, tracer.errs, 1)

	// The healthy source still produced its artifact.
	_, statErr := os.Stat(filepath.Join(dir, "public", "css", "ok.css"))
	assert.NoError(t, statErr)
}

func TestBuild_MissingSourceRoot(t *testing.T) {
	dir := t.TempDir()
	cfg := "source_root: missing\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.KilnFileName), []byte(cfg), 0o600))

	a := newApp(&recordingTracer{})
	err := a.Build(context.Background(), app.RunOptions{ConfigDir: dir})
	assert.Error(t, err)
}

func TestServe_ConfigLoadError(t *testing.T) {
	dir := t.TempDir()

	a := newApp(&recordingTracer{})
	err := a.Serve(context.Background(), app.RunOptions{ConfigDir: dir})
	assert.Error(t, err)
}

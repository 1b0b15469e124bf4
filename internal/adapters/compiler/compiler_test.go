package compiler_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/compiler"
	"go.trai.ch/kiln/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func compile(t *testing.T, path string, opts domain.CompileOptions) (*domain.CompileResult, error) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return compiler.New(".kln").Compile(context.Background(), path, string(data), opts)
}

func TestCompile_NoImports(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.kln", "body { color: red; }\n")

	res, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})
	require.NoError(t, err)

	assert.Equal(t, "body { color: red; }\n", res.Output)
	assert.Empty(t, res.Includes)
}

func TestCompile_InlinesImports(t *testing.T) {
	dir := t.TempDir()
	colors := writeFile(t, dir, "colors.kln", "a { color: blue; }\n")
	main := writeFile(t, dir, "main.kln", "@import \"colors\";\nbody { margin: 0; }\n")

	res, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})
	require.NoError(t, err)

	assert.Equal(t, "a { color: blue; }\nbody { margin: 0; }\n", res.Output)
	assert.Equal(t, []string{colors}, res.Includes)
}

func TestCompile_TransitiveIncludesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.kln", "html { font-size: 16px; }\n")
	colors := writeFile(t, dir, "colors.kln", "@import 'base';\na { color: blue; }\n")
	grid := writeFile(t, dir, "grid.kln", ".row { display: flex; }\n")
	main := writeFile(t, dir, "main.kln", "@import \"colors\";\n@import \"grid\";\n")

	res, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})
	require.NoError(t, err)

	assert.Equal(t, []string{colors, base, grid}, res.Includes)
	assert.Equal(t, "html { font-size: 16px; }\na { color: blue; }\n.row { display: flex; }\n", res.Output)
}

func TestCompile_DuplicateImportInlinedOnce(t *testing.T) {
	dir := t.TempDir()
	shared := writeFile(t, dir, "shared.kln", ".shared { }\n")
	writeFile(t, dir, "a.kln", "@import \"shared\";\n.a { }\n")
	writeFile(t, dir, "b.kln", "@import \"shared\";\n.b { }\n")
	main := writeFile(t, dir, "main.kln", "@import \"a\";\n@import \"b\";\n")

	res, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(res.Output, ".shared"))
	assert.Equal(t, 1, strings.Count(strings.Join(res.Includes, "\n"), shared))
}

func TestCompile_SearchPaths(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "lib")
	mixins := writeFile(t, libDir, "mixins.kln", ".mixin { }\n")
	main := writeFile(t, dir, "main.kln", "@import \"mixins\";\n")

	_, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})
	require.Error(t, err, "not resolvable without search path")

	res, err := compile(t, main, domain.CompileOptions{
		Style:        domain.StyleExpanded,
		IncludePaths: []string{libDir},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{mixins}, res.Includes)
}

func TestCompile_MissingImport(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.kln", "body { }\n  @import \"ghost\";\n")

	_, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})
	require.Error(t, err)

	var ce *domain.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, `"ghost"`)
	assert.Equal(t, main, ce.File)
	assert.Equal(t, 2, ce.Line)
	assert.Equal(t, 3, ce.Column)
}

func TestCompile_ImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.kln", "@import \"b\";\n")
	writeFile(t, dir, "b.kln", "@import \"a\";\n")
	main := writeFile(t, dir, "main.kln", "@import \"a\";\n")

	_, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})

	var ce *domain.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "cycle")
}

func TestCompile_SelfImportCycle(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.kln", "@import \"main\";\n")

	_, err := compile(t, main, domain.CompileOptions{Style: domain.StyleExpanded})

	var ce *domain.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Line)
}

func TestCompile_CompressedStyle(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.kln", "body {\n  margin: 0;\n}\n\na { color: red; }\n")

	res, err := compile(t, main, domain.CompileOptions{Style: domain.StyleCompressed})
	require.NoError(t, err)

	assert.Equal(t, "body {margin: 0;}a { color: red; }\n", res.Output)
}

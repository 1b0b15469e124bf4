// Package compiler implements the bundled stylesheet compiler. It flattens
// @import directives against the importing file's directory plus the
// configured search paths, and reports every file it pulled in.
package compiler

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// importPattern matches a whole-line import directive:
//
//	@import "name";
//
// Single quotes and a missing trailing semicolon are tolerated.
var importPattern = regexp.MustCompile(`^\s*@import\s+(?:"([^"]*)"|'([^']*)')\s*;?\s*$`)

// Compiler resolves imports by file extension. One instance per layout.
type Compiler struct {
	ext string
}

// New creates a Compiler resolving imports with the given source extension.
func New(sourceExt string) *Compiler {
	return &Compiler{ext: sourceExt}
}

// Compile flattens text. Each imported file is inlined at most once per
// compile (first reference wins); later imports of the same file are dropped.
// The include list preserves first-encounter order.
func (c *Compiler) Compile(ctx context.Context, path, text string, opts domain.CompileOptions) (*domain.CompileResult, error) {
	st := &expansion{
		compiler: c,
		opts:     opts,
		seen:     make(map[string]bool),
		onStack:  make(map[string]bool),
	}

	var b strings.Builder
	if err := st.expand(ctx, path, strings.TrimSuffix(text, "\n"), &b); err != nil {
		return nil, err
	}

	out := b.String()
	if opts.Style == domain.StyleCompressed {
		out = compress(out)
	}

	return &domain.CompileResult{Output: out, Includes: st.includes}, nil
}

// expansion carries the per-compile state.
type expansion struct {
	compiler *Compiler
	opts     domain.CompileOptions
	seen     map[string]bool
	onStack  map[string]bool
	includes []string
}

func (st *expansion) expand(ctx context.Context, path, text string, b *strings.Builder) error {
	if err := ctx.Err(); err != nil {
		return zerr.Wrap(err, "compile canceled")
	}

	st.onStack[path] = true
	defer delete(st.onStack, path)

	for i, line := range strings.Split(text, "\n") {
		m := importPattern.FindStringSubmatch(line)
		if m == nil {
			b.WriteString(line)
			b.WriteString("\n")
			continue
		}

		name := m[1]
		if name == "" {
			name = m[2]
		}

		if err := st.inline(ctx, path, line, i+1, name, b); err != nil {
			return err
		}
	}
	return nil
}

// inline resolves one import directive and expands the target in place.
func (st *expansion) inline(ctx context.Context, path, line string, lineNo int, name string, b *strings.Builder) error {
	col := strings.Index(line, "@") + 1

	resolved, err := st.compiler.resolve(name, filepath.Dir(path), st.opts.IncludePaths)
	if err != nil {
		return &domain.CompileError{
			Message: fmt.Sprintf("cannot resolve import %q", name),
			File:    path,
			Line:    lineNo,
			Column:  col,
		}
	}

	if st.onStack[resolved] {
		return &domain.CompileError{
			Message: fmt.Sprintf("import cycle through %q", name),
			File:    path,
			Line:    lineNo,
			Column:  col,
		}
	}

	// Already inlined earlier in this compile; the first reference won.
	if st.seen[resolved] {
		return nil
	}
	st.seen[resolved] = true
	st.includes = append(st.includes, resolved)

	data, err := os.ReadFile(resolved) //nolint:gosec // Resolved against configured roots
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read import"), "path", resolved)
	}

	text := strings.TrimSuffix(string(data), "\n")
	return st.expand(ctx, resolved, text, b)
}

// resolve tries the importing file's directory first, then the search paths.
// For each directory the name is tried verbatim and with the source extension.
func (c *Compiler) resolve(name, dir string, searchPaths []string) (string, error) {
	candidates := []string{name}
	if !strings.HasSuffix(name, c.ext) {
		candidates = append(candidates, name+c.ext)
	}

	for _, root := range append([]string{dir}, searchPaths...) {
		for _, cand := range candidates {
			p := filepath.Join(root, cand)
			info, err := os.Stat(p)
			if err == nil && info.Mode().IsRegular() {
				return filepath.Clean(p), nil
			}
		}
	}
	return "", zerr.With(zerr.Wrap(fs.ErrNotExist, "import not found"), "import", name)
}

// compress strips indentation and blank lines. Declarations keep their
// structural separators, so joining trimmed lines is safe.
func compress(out string) string {
	var b strings.Builder
	for line := range strings.Lines(out) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		b.WriteString(trimmed)
	}
	b.WriteString("\n")
	return b.String()
}

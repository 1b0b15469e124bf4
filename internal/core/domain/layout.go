// Package domain contains the core types for the kiln compile cache.
package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// DefaultSourceExt is the extension of compilable sources.
	DefaultSourceExt = ".kln"

	// DefaultOutputExt is the extension of compiled artifacts.
	DefaultOutputExt = ".css"

	// KilnFileName is the name of the project configuration file.
	KilnFileName = "kiln.yaml"

	// DirPerm is the default permission for created directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for written artifacts (rw-r--r--).
	FilePerm = 0o644
)

// Layout maps between request paths, source files and output artifacts.
// Both roots are absolute paths; Prefix is the URL path prefix under which
// artifacts are served.
type Layout struct {
	SourceRoot string
	SourceExt  string
	OutputRoot string
	OutputExt  string
	Prefix     string
}

// OutputFor derives the artifact path for a source file by re-rooting it from
// SourceRoot to OutputRoot and swapping the extension. The derivation is
// deterministic: one output per source.
func (l Layout) OutputFor(source string) (string, error) {
	rel, err := filepath.Rel(l.SourceRoot, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", zerr.With(zerr.Wrap(ErrNotManaged, "source outside source root"), "path", source)
	}
	rel = strings.TrimSuffix(rel, l.SourceExt) + l.OutputExt
	return filepath.Join(l.OutputRoot, rel), nil
}

// SourceFor derives the source path for a request path by stripping Prefix,
// swapping the extension and re-rooting under SourceRoot. Request paths that
// do not carry the prefix or the output extension are not managed by this
// layout.
func (l Layout) SourceFor(requestPath string) (string, error) {
	rel, ok := strings.CutPrefix(requestPath, l.Prefix)
	if !ok || !strings.HasSuffix(rel, l.OutputExt) {
		return "", zerr.With(zerr.Wrap(ErrNotManaged, ""), "path", requestPath)
	}
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimSuffix(rel, l.OutputExt) + l.SourceExt

	source := filepath.Join(l.SourceRoot, filepath.FromSlash(rel))

	// Reject traversal out of the source root.
	if inside, err := filepath.Rel(l.SourceRoot, source); err != nil || strings.HasPrefix(inside, "..") {
		return "", zerr.With(zerr.Wrap(ErrNotManaged, ""), "path", requestPath)
	}
	return source, nil
}

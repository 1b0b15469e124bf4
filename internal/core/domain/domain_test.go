package domain_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func testLayout() domain.Layout {
	return domain.Layout{
		SourceRoot: filepath.FromSlash("/srv/styles"),
		SourceExt:  ".kln",
		OutputRoot: filepath.FromSlash("/srv/public/css"),
		OutputExt:  ".css",
		Prefix:     "/css",
	}
}

func TestLayout_OutputFor(t *testing.T) {
	l := testLayout()

	out, err := l.OutputFor(filepath.FromSlash("/srv/styles/site/main.kln"))
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/public/css/site/main.css"), out)
}

func TestLayout_OutputFor_OutsideRoot(t *testing.T) {
	l := testLayout()

	_, err := l.OutputFor(filepath.FromSlash("/etc/passwd"))
	require.ErrorIs(t, err, domain.ErrNotManaged)
}

func TestLayout_SourceFor(t *testing.T) {
	l := testLayout()

	src, err := l.SourceFor("/css/site/main.css")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/srv/styles/site/main.kln"), src)
}

func TestLayout_SourceFor_NotManaged(t *testing.T) {
	l := testLayout()

	for _, p := range []string{"/js/app.js", "/css/logo.png", "/other/main.css"} {
		_, err := l.SourceFor(p)
		assert.ErrorIs(t, err, domain.ErrNotManaged, "path %s", p)
	}
}

func TestLayout_SourceFor_Traversal(t *testing.T) {
	l := testLayout()

	_, err := l.SourceFor("/css/../../secrets/main.css")
	require.ErrorIs(t, err, domain.ErrNotManaged)
}

func TestCompileError_Diagnostic(t *testing.T) {
	ce := &domain.CompileError{
		Message: `unterminated string "oops`,
		File:    "/srv/styles/bad.kln",
		Line:    3,
		Column:  7,
	}

	diag := ce.Diagnostic()

	assert.True(t, strings.HasPrefix(diag, "/* compile error"))
	assert.Contains(t, diag, "bad.kln:3:7")
	assert.Contains(t, diag, "body::before")
	// The raw quote must be escaped inside the content string.
	assert.Contains(t, diag, `\"oops`)
}

func TestCompileError_DiagnosticNeverClosesComment(t *testing.T) {
	ce := &domain.CompileError{Message: "evil */ body { }", File: "x.kln", Line: 1, Column: 1}

	diag := ce.Diagnostic()

	comment := diag[:strings.Index(diag, " */\n")+4]
	assert.NotContains(t, comment[3:len(comment)-4], "*/")
}

func TestParseOutputStyle(t *testing.T) {
	s, err := domain.ParseOutputStyle("compressed")
	require.NoError(t, err)
	assert.Equal(t, domain.StyleCompressed, s)

	_, err = domain.ParseOutputStyle("minified")
	assert.ErrorIs(t, err, domain.ErrUnknownOutputStyle)
}

func TestParseCheckMode(t *testing.T) {
	m, err := domain.ParseCheckMode("content")
	require.NoError(t, err)
	assert.Equal(t, domain.CheckContent, m)

	_, err = domain.ParseCheckMode("inode")
	assert.ErrorIs(t, err, domain.ErrUnknownCheckMode)
}

func TestInternedString_Zero(t *testing.T) {
	var is domain.InternedString
	assert.Equal(t, "", is.String())
}

func TestInternStrings(t *testing.T) {
	in := []string{"/a/b.kln", "/a/c.kln"}
	out := domain.InternStrings(in)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i], out[i].String())
	}
}

package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// OutputStyle selects the formatting of compiled output. It is passed through
// to the compiler opaquely; the engine never interprets it.
type OutputStyle string

const (
	// StyleExpanded keeps the source formatting of inlined files.
	StyleExpanded OutputStyle = "expanded"
	// StyleCompressed strips indentation and blank lines.
	StyleCompressed OutputStyle = "compressed"
)

// ParseOutputStyle validates a style name from configuration.
func ParseOutputStyle(s string) (OutputStyle, error) {
	switch OutputStyle(s) {
	case StyleExpanded, StyleCompressed:
		return OutputStyle(s), nil
	}
	return "", zerr.With(zerr.Wrap(ErrUnknownOutputStyle, ""), "style", s)
}

// CheckMode selects how the engine decides staleness.
type CheckMode string

const (
	// CheckModtime compares modification timestamps, strictly greater-than.
	// This preserves the original polling behavior: on filesystems with
	// whole-second timestamps an edit landing in the same second as the last
	// compile is not detected.
	CheckModtime CheckMode = "modtime"
	// CheckContent compares xxhash fingerprints recorded at compile time.
	CheckContent CheckMode = "content"
)

// ParseCheckMode validates a check mode name from configuration.
func ParseCheckMode(s string) (CheckMode, error) {
	switch CheckMode(s) {
	case CheckModtime, CheckContent:
		return CheckMode(s), nil
	}
	return "", zerr.With(zerr.Wrap(ErrUnknownCheckMode, ""), "check", s)
}

// CompileOptions is the option surface the engine forwards to the compiler.
type CompileOptions struct {
	// IncludePaths are extra directories searched for imports, after the
	// importing file's own directory.
	IncludePaths []string
	// Style is forwarded opaquely.
	Style OutputStyle
}

// CompileResult is a successful compilation: the output text and every file
// the compiler pulled in, transitively, in first-encounter order.
type CompileResult struct {
	Output   string
	Includes []string
}

// CompileError reports a rejected source with its location. It is a
// recoverable per-request condition, not a server failure.
type CompileError struct {
	Message string
	File    string
	Line    int
	Column  int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// Diagnostic renders the error as inert output text: a comment carrying the
// full location plus a body::before rule so the message shows up on the page.
// The payload is content to display, never code to execute.
func (e *CompileError) Diagnostic() string {
	loc := fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)

	var b strings.Builder
	b.WriteString("/* compile error\n")
	b.WriteString(" * " + commentSafe(e.Message) + "\n")
	b.WriteString(" * at " + commentSafe(loc) + "\n")
	b.WriteString(" */\n")
	b.WriteString(`body::before { content: "compile error: ` +
		contentSafe(e.Message) + ` (` + contentSafe(loc) + `)"; ` +
		"display: block; white-space: pre; font-family: monospace; }\n")
	return b.String()
}

// commentSafe keeps arbitrary text from terminating the surrounding comment.
func commentSafe(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}

// contentSafe escapes text for use inside a double-quoted content string.
func contentSafe(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\A `, "\r", "")
	return r.Replace(s)
}

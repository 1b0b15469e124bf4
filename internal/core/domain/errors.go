package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceNotFound is returned when the source behind a requested artifact
	// does not exist. Handlers treat it as a pass-through, not a failure.
	ErrSourceNotFound = zerr.New("source not found")

	// ErrNotManaged is returned when a request path does not map into the
	// configured layout.
	ErrNotManaged = zerr.New("path not managed by layout")

	// ErrUnknownOutputStyle is returned for an unrecognized output style name.
	ErrUnknownOutputStyle = zerr.New("unknown output style")

	// ErrUnknownCheckMode is returned for an unrecognized staleness check mode.
	ErrUnknownCheckMode = zerr.New("unknown check mode")

	// ErrBuildFailed is returned by the batch build when at least one source
	// did not compile.
	ErrBuildFailed = zerr.New("build failed")
)

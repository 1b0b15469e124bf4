package domain

// Settings is the full configuration surface consumed by the engine and the
// serving layer. It is loaded from kiln.yaml and overridden by CLI flags.
type Settings struct {
	Layout Layout

	// Force recompiles on every request and never reads the cached artifact.
	Force bool
	// Response recompiles on every request and never writes the artifact;
	// output is served purely from memory.
	Response bool
	// Debug emits a log line for every staleness decision.
	Debug bool
	// Coalesce collapses concurrent recompiles of one source into a single
	// compiler invocation. Off by default: the baseline contract accepts the
	// duplicate-work race.
	Coalesce bool

	Check CheckMode
	Style OutputStyle

	// IncludePaths are appended to the compiler's import search path.
	IncludePaths []string

	// Listen is the serve address, e.g. ":8917".
	Listen string
}

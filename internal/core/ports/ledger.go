package ports

// ImportLedger tracks, per source, the files that source transitively
// included during its last successful compile. Absence of an entry means
// "never compiled since process start" and always forces a recompile, even if
// the artifact still exists on disk from a previous run.
//
//go:generate go run go.uber.org/mock/mockgen -source=ledger.go -destination=mocks/mock_ledger.go -package=mocks
type ImportLedger interface {
	// Record replaces the tracked set for source. Never merged: a compile
	// that stops including a file drops it from tracking.
	Record(source string, includes []string)

	// Clear removes tracking for source. Called before every recompile
	// attempt so a failed compile leaves "unknown", not stale trust.
	Clear(source string)

	// Lookup returns the tracked include list and whether source is known.
	Lookup(source string) ([]string, bool)
}

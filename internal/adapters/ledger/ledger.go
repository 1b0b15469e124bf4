// Package ledger implements the in-memory import ledger.
package ledger

import (
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.ImportLedger = (*Ledger)(nil)

// Ledger maps each source path to the files it included during its last
// successful compile. State lives for the process lifetime only; nothing is
// persisted, so every source is recompiled once after a restart.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string][]domain.InternedString
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		entries: make(map[string][]domain.InternedString),
	}
}

// Record replaces the tracked include set for source.
func (l *Ledger) Record(source string, includes []string) {
	interned := domain.InternStrings(includes)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[source] = interned
}

// Clear removes tracking for source.
func (l *Ledger) Clear(source string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, source)
}

// Lookup returns a copy of the tracked include list and whether source is
// known. Order is preserved from the compile that recorded it.
func (l *Ledger) Lookup(source string) ([]string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	interned, ok := l.entries[source]
	if !ok {
		return nil, false
	}

	includes := make([]string, len(interned))
	for i, is := range interned {
		includes[i] = is.String()
	}
	return includes, true
}

// Len reports the number of tracked sources.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

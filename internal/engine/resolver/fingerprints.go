package resolver

import "sync"

// fingerprintCache holds, per source, the content hashes of the source and
// its imports as of the last successful compile. Only consulted in the
// content check mode; lifetime matches the ledger (process only).
type fingerprintCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]uint64
}

func newFingerprintCache() *fingerprintCache {
	return &fingerprintCache{entries: make(map[string]map[string]uint64)}
}

func (c *fingerprintCache) record(source string, prints map[string]uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[source] = prints
}

func (c *fingerprintCache) clear(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, source)
}

func (c *fingerprintCache) lookup(source string) (map[string]uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	prints, ok := c.entries[source]
	return prints, ok
}

package pipeline

import "sync"

// hashLocks serializes pipeline runs per content hash. Two simultaneous
// submissions of the same bytes must not be double-accepted; distinct
// documents proceed in parallel. Entries are reference counted so the map
// does not grow with the corpus.
type hashLocks struct {
	mu    sync.Mutex
	locks map[string]*hashLock
}

type hashLock struct {
	mu   sync.Mutex
	refs int
}

func newHashLocks() *hashLocks {
	return &hashLocks{locks: make(map[string]*hashLock)}
}

// lock acquires the exclusive lock for a content hash and returns the
// release function. The release must be called exactly once, on the
// terminal outcome of the run.
func (h *hashLocks) lock(contentHash string) func() {
	h.mu.Lock()
	entry, ok := h.locks[contentHash]
	if !ok {
		entry = &hashLock{}
		h.locks[contentHash] = entry
	}
	entry.refs++
	h.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		h.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(h.locks, contentHash)
		}
		h.mu.Unlock()
	}
}

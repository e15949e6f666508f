package badger

import "testing"

// NewMemoryRepositories opens an in-memory backend with document and claim
// stores for tests. Everything is cleaned up when the test finishes.
func NewMemoryRepositories(t *testing.T) (*DocumentStore, *ClaimStore) {
	t.Helper()

	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("failed to open in-memory backend: %v", err)
	}
	docs, err := NewDocumentStore(backend)
	if err != nil {
		t.Fatalf("failed to create document store: %v", err)
	}
	claims := NewClaimStore(backend)

	t.Cleanup(func() {
		docs.Close()
		claims.Close()
		backend.Close()
	})
	return docs, claims
}

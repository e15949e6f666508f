package storage

import (
	"context"

	"github.com/poiesic/casefile/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository is the authoritative registry of documents, duplicate
// edges, scores, and correlations. Edges, scores, and correlations are
// append-only: historical rows are never mutated in place. The Document row
// itself carries a materialized current status for fast lookup.
type DocumentRepository interface {
	Repository

	// AddDocument adds a document to storage.
	// Generates a new ID from sequence and sets IngestedAt if not already set.
	// Returns the document with ID and timestamps populated.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// UpdateDocument updates an existing document, maintaining the status
	// and content-hash indices. Updates the UpdatedAt timestamp.
	// Returns ErrNotFound if the document doesn't exist.
	UpdateDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// GetDocumentByContentHash retrieves the accepted document with the
	// given content hash. Returns ErrNotFound if no accepted document
	// carries the hash.
	GetDocumentByContentHash(ctx context.Context, hash string) (*core.Document, error)

	// GetDocumentsByStatus retrieves all documents with the given status,
	// ordered by ID ascending.
	GetDocumentsByStatus(ctx context.Context, status core.DocumentStatus) ([]*core.Document, error)

	// FindSimilar finds accepted documents whose embedding is similar to the
	// given vector. Returns candidates with similarity >= minSimilarity, up
	// to limit results, ordered by similarity descending with ties broken
	// by lowest ID.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.MatchCandidate, error)

	// AppendDuplicateEdges appends audit edges for tier evaluations.
	// Edges are never updated or deleted.
	AppendDuplicateEdges(ctx context.Context, edges ...*core.DuplicateEdge) error

	// GetDuplicateEdges retrieves all edges recorded for a candidate
	// document, in append order.
	GetDuplicateEdges(ctx context.Context, candidateID core.ID) ([]*core.DuplicateEdge, error)

	// AppendScoreRecord stores the score record for an accepted document.
	// Exactly one record may exist per document; a second append returns
	// ErrDuplicateKey.
	AppendScoreRecord(ctx context.Context, record *core.ScoreRecord) error

	// GetScoreRecord retrieves the score record for a document.
	// Returns ErrNotFound if the document has not been scored.
	GetScoreRecord(ctx context.Context, documentID core.ID) (*core.ScoreRecord, error)

	// AppendCorrelations appends correlation records.
	// Records are never updated or deleted.
	AppendCorrelations(ctx context.Context, records ...*core.CorrelationRecord) error

	// GetCorrelationsByClaim retrieves all correlation records for a claim,
	// in append order.
	GetCorrelationsByClaim(ctx context.Context, claimID core.ID) ([]*core.CorrelationRecord, error)

	// GetCorrelationsByDocument retrieves all correlation records for a
	// document, in append order.
	GetCorrelationsByDocument(ctx context.Context, documentID core.ID) ([]*core.CorrelationRecord, error)
}

// ClaimRepository provides operations for managing tracked claims.
type ClaimRepository interface {
	Repository

	// AddClaims adds one or more claim definitions to storage.
	// Uses content-based IDs (IDFromContent of the claim tuple).
	// Sets InsertedAt timestamp if not already set.
	// Returns the claims with IDs and timestamps populated.
	AddClaims(ctx context.Context, claims ...*core.ClaimDefinition) ([]*core.ClaimDefinition, error)

	// GetClaim retrieves a single claim by ID.
	// Returns ErrNotFound if the claim doesn't exist.
	GetClaim(ctx context.Context, id core.ID) (*core.ClaimDefinition, error)

	// ListClaims retrieves all claim definitions, ordered by ID.
	ListClaims(ctx context.Context) ([]*core.ClaimDefinition, error)
}

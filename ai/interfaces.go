package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TextExtractor produces UTF-8 text from raw document bytes.
// Partial or garbled output is acceptable and must be returned rather than
// treated as an error; only a completely unavailable service or an empty
// result is a failure.
// Implementations must be thread-safe for concurrent use.
type TextExtractor interface {
	// ExtractText extracts the textual content of a document.
	// Returns the extracted text, which may be partial or garbled.
	// Returns an error if the extraction service is unavailable or the
	// result is empty.
	ExtractText(ctx context.Context, filename string, data []byte) (string, error)
}

// Classifier detects entity categories and the document category for a
// document's text, and assesses the document's legal posture relative to
// the pending motion and claim set.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// Classify analyzes document text and returns detected categories.
	// A document that matches no known category returns CategoryUnknown
	// with empty entity counts, not an error.
	Classify(ctx context.Context, text string) (*Classification, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder,
// TextExtractor, and Classifier instances, ensuring they share
// configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// TextExtractor returns the document text extraction service.
	// The returned TextExtractor is safe for concurrent use.
	TextExtractor() TextExtractor

	// Classifier returns the document classification service.
	// The returned Classifier is safe for concurrent use.
	Classifier() Classifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.TextExtractor,
// ai.Classifier, and ai.AIProvider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	text, err := mockProvider.TextExtractor().ExtractText(ctx, "a.pdf", raw)
//
//	// Custom behavior injection
//	mockClassifier := mock.NewMockClassifier()
//	mockClassifier.ClassifyFunc = func(ctx context.Context, text string) (*ai.Classification, error) {
//	    return &ai.Classification{Category: ai.CategoryCourtOrder}, nil
//	}
//
//	// Check call counts (used to assert escalation short-circuits)
//	count := mockClassifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockTextExtractor: Decodes the raw bytes as UTF-8 text
//   - MockClassifier: Returns an unknown category with no entities
//   - MockProvider: Aggregates all three mocks
package mock

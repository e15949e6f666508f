package mock

import (
	"context"

	"github.com/poiesic/casefile/ai"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, returns an unknown category with no entities.
	ClassifyFunc func(ctx context.Context, text string) (*ai.Classification, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via call counts.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify returns a zero-valued classification by default.
// The zero result exercises the missing-data-contributes-zero path in the
// scoring engine.
func (m *MockClassifier) Classify(ctx context.Context, text string) (*ai.Classification, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}

	return &ai.Classification{
		Category: ai.CategoryUnknown,
		Entities: map[ai.EntityCategory]int{},
	}, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}

package mock

import (
	"context"
	"strings"

	"github.com/poiesic/casefile/ai"
)

// MockTextExtractor is a test double for ai.TextExtractor.
// It allows custom behavior injection via function fields.
type MockTextExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	// If nil, the raw bytes are decoded as UTF-8 text.
	ExtractTextFunc func(ctx context.Context, filename string, data []byte) (string, error)

	callCount int
}

// NewMockTextExtractor creates a mock text extractor with default behavior.
// Note: Returns concrete type to allow test assertions via call counts.
func NewMockTextExtractor() *MockTextExtractor {
	return &MockTextExtractor{}
}

// ExtractText returns the raw bytes decoded as text.
// Default behavior mirrors a perfect OCR pass over a text document.
func (m *MockTextExtractor) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	m.callCount++

	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, filename, data)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ai.ErrEmptyExtraction
	}
	return text, nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockTextExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockTextExtractor) Reset() {
	m.callCount = 0
	m.ExtractTextFunc = nil
}

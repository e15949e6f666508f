package openai

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/poiesic/casefile/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TextExtractor implements ai.TextExtractor using OpenAI-compatible
// multimodal chat APIs. Plain-text submissions short-circuit without a
// service call.
type TextExtractor struct {
	client  llms.Model
	limiter *callLimiter
	timeout callTimeout
	logger  *slog.Logger
}

// newTextExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTextExtractor(config *ai.Config, limiter *callLimiter) (*TextExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &TextExtractor{
		client:  client,
		limiter: limiter,
		timeout: callTimeout(config.CallTimeout),
		logger:  slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewTextExtractor creates a new text extractor using the provided configuration.
//
// Returns ai.TextExtractor interface to enforce abstraction.
func NewTextExtractor(config *ai.Config) (ai.TextExtractor, error) {
	return newTextExtractor(config, newCallLimiter(config.RequestsPerSecond))
}

// ExtractText extracts the textual content of a document. Plain-text files
// are decoded directly; binary formats are sent to the extraction service.
// An empty result is reported as ai.ErrEmptyExtraction so callers can
// degrade instead of accepting an unverifiable document.
func (e *TextExtractor) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ai.ErrEmptyExtraction
	}

	mime := mimeTypeFor(filename)
	if strings.HasPrefix(mime, "text/") {
		return strings.TrimSpace(string(data)), nil
	}

	if err := e.limiter.wait(ctx); err != nil {
		return "", err
	}
	ctx, cancel := e.timeout.bound(ctx)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mime, data),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		e.logger.Error("extraction call failed", "filename", filename, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		e.logger.Warn("extractor returned no choices", "filename", filename)
		return "", ai.ErrEmptyExtraction
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return "", ai.ErrEmptyExtraction
	}

	e.logger.Debug("extracted text", "filename", filename, "length", len(text))
	return text, nil
}

// mimeTypeFor resolves a best-effort MIME type from the file extension.
func mimeTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text":
		return "text/plain"
	case ".md":
		return "text/markdown"
	case ".html", ".htm":
		return "text/html"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

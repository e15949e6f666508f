package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ExtractorHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.ClassifierModel)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ClassifierHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ExtractorHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithClassifierHost("http://classify:9090/v1"),
			WithExtractorHost("http://ocr:9100/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://classify:9090/v1", cfg.ClassifierHost)
		assert.Equal(t, "http://ocr:9100/v1", cfg.ExtractorHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithClassifierModel("gpt-4o-mini"),
		)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ClassifierModel)
	})

	t.Run("with custom timeout", func(t *testing.T) {
		cfg := NewConfig(WithCallTimeout(5 * time.Second))

		assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	})

	t.Run("with rate limit", func(t *testing.T) {
		cfg := NewConfig(WithRequestsPerSecond(2.5))

		assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	})
}

func TestConfig_Normalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434",
			ClassifierHost: "http://localhost:11434/",
			ExtractorHost:  "http://localhost:9100/v1",
		}
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ClassifierHost)
		assert.Equal(t, "http://localhost:9100/v1", cfg.ExtractorHost)
	})

	t.Run("defaults zero timeout", func(t *testing.T) {
		cfg := &Config{}
		cfg.Normalize()

		assert.Equal(t, 30*time.Second, cfg.CallTimeout)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EmbeddingHost = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing classifier model", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ClassifierModel = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestValidDocumentCategory(t *testing.T) {
	for _, c := range DocumentCategories {
		assert.True(t, ValidDocumentCategory(c))
	}
	assert.False(t, ValidDocumentCategory("grocery_list"))
}

func TestValidEntityCategory(t *testing.T) {
	for _, c := range EntityCategories {
		assert.True(t, ValidEntityCategory(c))
	}
	assert.False(t, ValidEntityCategory("unknown_entity"))
}

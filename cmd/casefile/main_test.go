package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/casefile/ai"
)

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "verbose")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := newApp()
		app.Action = func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		}
		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestLoadAIConfig(t *testing.T) {
	t.Run("no file uses defaults", func(t *testing.T) {
		config, err := loadAIConfig("")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:11434/v1", config.EmbeddingHost)
		assert.NotEmpty(t, config.EmbeddingModel)
		assert.NotEmpty(t, config.ClassifierModel)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := loadAIConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("ai: ["), 0o644))
		_, err := loadAIConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
ai:
  embedding_host: http://ai.internal:8080
  embedding_model: custom-embed
  classifier_model: custom-classify
  call_timeout: 45s
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		config, err := loadAIConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://ai.internal:8080/v1", config.EmbeddingHost)
		assert.Equal(t, "custom-embed", config.EmbeddingModel)
		assert.Equal(t, "custom-classify", config.ClassifierModel)
		assert.Equal(t, 45*time.Second, config.CallTimeout)
		// Fields the file omits keep their defaults.
		assert.Equal(t, "http://localhost:11434/v1", config.ClassifierHost)
	})

	t.Run("flag overrides beat file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
ai:
  embedding_model: from-file
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		config, err := loadAIConfig(path, ai.WithEmbeddingModel("from-flag"))
		require.NoError(t, err)
		assert.Equal(t, "from-flag", config.EmbeddingModel)
	})
}

func TestMatchThresholdsFromFile(t *testing.T) {
	t.Run("file match section produces a pipeline option", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
match:
  filename_threshold: 0.8
  text_threshold: 0.9
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		fc, err := loadFileConfig(path)
		require.NoError(t, err)
		assert.Equal(t, float32(0.8), fc.Match.FilenameThreshold)
		assert.Equal(t, float32(0.9), fc.Match.TextThreshold)
		assert.Zero(t, fc.Match.SemanticThreshold)
		assert.Len(t, thresholdOptions(fc), 1)
	})

	t.Run("absent match section keeps tier defaults", func(t *testing.T) {
		fc, err := loadFileConfig("")
		require.NoError(t, err)
		assert.Empty(t, thresholdOptions(fc))
	})
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/pipeline"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional YAML configuration file. Flags take
// precedence over file values; file values take precedence over defaults.
type fileConfig struct {
	AI struct {
		EmbeddingHost     string        `yaml:"embedding_host"`
		EmbeddingModel    string        `yaml:"embedding_model"`
		ClassifierHost    string        `yaml:"classifier_host"`
		ClassifierModel   string        `yaml:"classifier_model"`
		ExtractorHost     string        `yaml:"extractor_host"`
		ExtractorModel    string        `yaml:"extractor_model"`
		CallTimeout       time.Duration `yaml:"call_timeout"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
	} `yaml:"ai"`
	Match struct {
		FilenameThreshold float32 `yaml:"filename_threshold"`
		TextThreshold     float32 `yaml:"text_threshold"`
		SemanticThreshold float32 `yaml:"semantic_threshold"`
	} `yaml:"match"`
}

// loadFileConfig reads and parses the YAML configuration file. An empty
// path yields a zero config, so every value falls back to its default.
func loadFileConfig(path string) (*fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return &fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &fc, nil
}

// aiConfig builds the AI configuration from parsed file values plus flag
// overrides. Empty override values leave the file/default value alone.
func aiConfig(fc *fileConfig, overrides ...ai.ConfigOption) (*ai.Config, error) {
	var opts []ai.ConfigOption

	if fc.AI.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(fc.AI.EmbeddingHost))
	}
	if fc.AI.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(fc.AI.EmbeddingModel))
	}
	if fc.AI.ClassifierHost != "" {
		opts = append(opts, ai.WithClassifierHost(fc.AI.ClassifierHost))
	}
	if fc.AI.ClassifierModel != "" {
		opts = append(opts, ai.WithClassifierModel(fc.AI.ClassifierModel))
	}
	if fc.AI.ExtractorHost != "" {
		opts = append(opts, ai.WithExtractorHost(fc.AI.ExtractorHost))
	}
	if fc.AI.ExtractorModel != "" {
		opts = append(opts, ai.WithExtractorModel(fc.AI.ExtractorModel))
	}
	if fc.AI.CallTimeout > 0 {
		opts = append(opts, ai.WithCallTimeout(fc.AI.CallTimeout))
	}
	if fc.AI.RequestsPerSecond > 0 {
		opts = append(opts, ai.WithRequestsPerSecond(fc.AI.RequestsPerSecond))
	}

	opts = append(opts, overrides...)
	config := ai.NewConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

// loadAIConfig is the one-step form for commands that need only the AI
// configuration.
func loadAIConfig(path string, overrides ...ai.ConfigOption) (*ai.Config, error) {
	fc, err := loadFileConfig(path)
	if err != nil {
		return nil, err
	}
	return aiConfig(fc, overrides...)
}

// thresholdOptions translates the file's match section into pipeline
// options. Unset thresholds keep the tier defaults.
func thresholdOptions(fc *fileConfig) []pipeline.Option {
	m := fc.Match
	if m.FilenameThreshold == 0 && m.TextThreshold == 0 && m.SemanticThreshold == 0 {
		return nil
	}
	return []pipeline.Option{
		pipeline.WithThresholds(m.FilenameThreshold, m.TextThreshold, m.SemanticThreshold),
	}
}

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/casefile/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client  llms.Model
	limiter *callLimiter
	timeout callTimeout
	logger  *slog.Logger
}

// entity is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type entity struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// classification is the wrapper structure for the LLM's JSON response.
type classification struct {
	DocumentCategory     string   `json:"document_category"`
	Entities             []entity `json:"entities"`
	ElementMatches       int      `json:"element_matches"`
	Admissibility        bool     `json:"admissibility"`
	ProceduralCompliance bool     `json:"procedural_compliance"`
	StrategicValue       bool     `json:"strategic_value"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config, limiter *callLimiter) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/classification
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client:  client,
		limiter: limiter,
		timeout: callTimeout(config.CallTimeout),
		logger:  slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new document classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config, newCallLimiter(config.RequestsPerSecond))
}

// Classify analyzes document text with an LLM and returns detected
// categories. Unknown categories in the response are dropped rather than
// failing the call.
func (c *Classifier) Classify(ctx context.Context, text string) (*ai.Classification, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := c.timeout.bound(ctx)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifierPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result classification
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return &ai.Classification{Category: ai.CategoryUnknown}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return nil, lastErr
	}

	return c.convert(&result), nil
}

// convert filters the raw LLM response into a domain Classification.
func (c *Classifier) convert(raw *classification) *ai.Classification {
	category := ai.DocumentCategory(strings.ReplaceAll(raw.DocumentCategory, " ", "_"))
	if !ai.ValidDocumentCategory(category) {
		c.logger.Debug("dropping unknown document category", "category", raw.DocumentCategory)
		category = ai.CategoryUnknown
	}

	entities := make(map[ai.EntityCategory]int, len(raw.Entities))
	for _, e := range raw.Entities {
		entityCategory := ai.EntityCategory(strings.ReplaceAll(e.Category, " ", "_"))
		if !ai.ValidEntityCategory(entityCategory) {
			c.logger.Debug("dropping unknown entity category", "category", e.Category)
			continue
		}
		if e.Count > 0 {
			entities[entityCategory] += e.Count
		}
	}

	elementMatches := raw.ElementMatches
	if elementMatches < 0 {
		elementMatches = 0
	}

	return &ai.Classification{
		Category:             category,
		Entities:             entities,
		ElementMatches:       elementMatches,
		Admissibility:        raw.Admissibility,
		ProceduralCompliance: raw.ProceduralCompliance,
		StrategicValue:       raw.StrategicValue,
	}
}

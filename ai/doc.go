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

// Package ai provides abstractions for the AI services used in Casefile.
//
// This package defines interfaces for the external collaborators the
// ingestion pipeline depends on: text extraction (OCR), text embeddings,
// and document classification. It follows the dependency inversion
// principle, allowing the core domain and pipeline logic to depend on
// abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - TextExtractor: Produces UTF-8 text from raw document bytes
//   - Classifier: Detects entity and document categories in text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// All three services suspend for non-trivial wall-clock time and must be
// called with a timeout-bounded context; a timeout is treated the same as
// a service failure by callers.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockClassifier,
// mock.NewMockTextExtractor) return CONCRETE types to enable test
// assertions and behavior injection via the mock's public fields
// (CallCount, ClassifyFunc, Reset, etc.).
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	text, err := provider.TextExtractor().ExtractText(ctx, "Motion.pdf", raw)
//	vector, err := provider.Embedder().EmbedText(ctx, text)
//	result, err := provider.Classifier().Classify(ctx, text)
package ai

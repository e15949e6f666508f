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

package match

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage"
)

// maxEmbedChars bounds the text sent to the embedding service. Embedding
// models truncate long inputs anyway; truncating here keeps the request
// payload predictable.
const maxEmbedChars = 8000

// SemanticMatcher is the most expensive cascade tier. It embeds the
// document's extracted text and searches the accepted corpus for the
// nearest vectors.
type SemanticMatcher struct {
	docs      storage.DocumentRepository
	embedder  ai.Embedder
	threshold float32
}

var _ Matcher = (*SemanticMatcher)(nil)

// NewSemanticMatcher creates the semantic tier.
func NewSemanticMatcher(docs storage.DocumentRepository, embedder ai.Embedder, opts ...Option) *SemanticMatcher {
	m := &SemanticMatcher{
		docs:      docs,
		embedder:  embedder,
		threshold: DefaultSemanticThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *SemanticMatcher) Tier() core.Tier        { return core.TierSemantic }
func (m *SemanticMatcher) Threshold() float32     { return m.threshold }
func (m *SemanticMatcher) setThreshold(t float32) { m.threshold = t }

// BestMatch embeds the document and returns its two nearest accepted
// neighbors. The computed vector is stored on the document so the caller
// can persist it; an accepted document's vector is what future submissions
// are compared against.
func (m *SemanticMatcher) BestMatch(ctx context.Context, doc *core.Document) (*core.MatchCandidate, *core.MatchCandidate, error) {
	if !doc.TextExtracted() {
		return nil, nil, fmt.Errorf("%w: document %d", ErrNoText, doc.Id)
	}

	if len(doc.Vector) == 0 {
		vector, err := m.embedder.EmbedText(ctx, truncateForEmbedding(doc.Text))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrTierUnavailable, err)
		}
		doc.Vector = vector
	}

	candidates, err := m.docs.FindSimilar(ctx, doc.Vector, 0, 3)
	if err != nil {
		return nil, nil, err
	}

	var top topTwo
	for _, candidate := range candidates {
		if candidate.DocumentId == doc.Id {
			continue
		}
		top.observe(candidate.DocumentId, candidate.Similarity)
	}
	return top.best, top.runnerUp, nil
}

// truncateForEmbedding cuts text at maxEmbedChars without splitting a
// UTF-8 sequence.
func truncateForEmbedding(text string) string {
	if len(text) <= maxEmbedChars {
		return text
	}
	cut := maxEmbedChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

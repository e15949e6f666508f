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

package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/correlate"
	"github.com/poiesic/casefile/match"
	"github.com/poiesic/casefile/storage"
)

// Pipeline drives a submission through the duplicate-detection cascade and,
// for accepted documents, through scoring and claim correlation. Submissions
// for distinct content run concurrently; submissions sharing a content hash
// are serialized.
type Pipeline struct {
	docs       storage.DocumentRepository
	claims     storage.ClaimRepository
	provider   ai.AIProvider
	pool       *ants.Pool
	locks      *hashLocks
	monitor    IngestMonitor
	correlator *correlate.Correlator

	filenameTier *match.FilenameMatcher
	textTier     *match.TextMatcher
	semanticTier *match.SemanticMatcher

	filenameThreshold float32
	textThreshold     float32
	semanticThreshold float32

	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithMonitor sets an ingest monitor receiving tier-by-tier callbacks.
// Default is a no-op monitor.
func WithMonitor(monitor IngestMonitor) Option {
	return func(p *Pipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// WithThresholds overrides the tier similarity thresholds, in cascade
// order: filename, text, semantic. A zero keeps that tier's default;
// anything else must lie in (0, 1].
func WithThresholds(filename, text, semantic float32) Option {
	return func(p *Pipeline) error {
		for _, t := range []float32{filename, text, semantic} {
			if t < 0 || t > 1 {
				return ErrInvalidThreshold
			}
		}
		p.filenameThreshold = filename
		p.textThreshold = text
		p.semanticThreshold = semantic
		return nil
	}
}

// WithRetry configures extraction retry behavior.
// Default is 3 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given repositories and
// AI provider.
func NewPipeline(
	docs storage.DocumentRepository,
	claims storage.ClaimRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if claims == nil {
		return nil, ErrClaimRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		docs:        docs,
		claims:      claims,
		provider:    provider,
		pool:        pool,
		locks:       newHashLocks(),
		monitor:     &noopMonitor{},
		maxAttempts: 3,
		baseDelay:   500 * time.Millisecond,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	p.filenameTier = match.NewFilenameMatcher(docs, match.WithThreshold(p.filenameThreshold))
	p.textTier = match.NewTextMatcher(docs, match.WithThreshold(p.textThreshold))
	p.semanticTier = match.NewSemanticMatcher(docs, provider.Embedder(), match.WithThreshold(p.semanticThreshold))
	p.correlator = correlate.NewCorrelator(docs, claims)

	return p, nil
}

// Submit runs one submission through the cascade and blocks until it
// reaches a terminal outcome. Errors are returned only for invalid
// submissions or registry-store failures; tier dependency failures degrade
// to a needs_review decision instead.
func (p *Pipeline) Submit(ctx context.Context, sub *Submission) (*Decision, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}

	if p.pool.IsClosed() {
		return nil, ErrReleased
	}

	type result struct {
		decision *Decision
		err      error
	}
	done := make(chan result, 1)
	err := p.pool.Submit(func() {
		decision, err := p.process(ctx, sub)
		done <- result{decision, err}
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.decision, r.err
	}
}

// SubmitAll runs submissions concurrently and returns a decision (or error)
// per submission in input order.
func (p *Pipeline) SubmitAll(ctx context.Context, subs []*Submission) []SubmissionResult {
	results := make([]SubmissionResult, len(subs))
	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := p.Submit(ctx, sub)
			results[i] = SubmissionResult{Decision: decision, Err: err}
		}()
	}
	wg.Wait()
	return results
}

// SubmissionResult pairs one submission's decision with its error.
type SubmissionResult struct {
	Decision *Decision
	Err      error
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

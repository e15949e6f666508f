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
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/match"
	"github.com/poiesic/casefile/scoring"
	"github.com/poiesic/casefile/storage"
)

// Submission is one arriving document: raw bytes plus source metadata.
type Submission struct {
	Filename string
	Data     []byte
	Origin   string // e.g. "mobile", "bulk_scan", "cloud_sync"
	Caption  string
	DocDate  *time.Time // date the document refers to, when the source knows it
}

func (s *Submission) validate() error {
	if s == nil || len(s.Data) == 0 {
		return ErrEmptySubmission
	}
	if s.Filename == "" {
		return ErrMissingFilename
	}
	return nil
}

// Decision is the terminal outcome of one submission's run.
type Decision struct {
	DocumentId core.ID
	Status     core.DocumentStatus
	MatchedId  core.ID   // set when Status is duplicate_of
	Resolved   core.Tier // tier that resolved the outcome, valid when MatchedId != 0
	Scores     *core.ScoreRecord
	// Candidates carries the evidence behind a needs_review outcome: the
	// tied candidates of an ambiguous tier, or empty when review is needed
	// because every remaining tier failed.
	Candidates []*core.MatchCandidate
}

// process runs the full cascade for one submission under the content-hash
// lock. Every run terminates in exactly one of accepted, duplicate_of,
// needs_review, or failed.
func (p *Pipeline) process(ctx context.Context, sub *Submission) (*Decision, error) {
	contentHash := core.HashContent(sub.Data)
	unlock := p.locks.lock(contentHash)
	defer unlock()

	p.monitor.Start(sub.Filename, contentHash)

	source := core.SourceRef{
		Id:      uuid.NewString(),
		Origin:  sub.Origin,
		Caption: sub.Caption,
	}

	// Exact-hash pre-check. Byte-identical resubmissions are duplicates
	// regardless of filename, with no tier comparison at all.
	existing, err := p.docs.GetDocumentByContentHash(ctx, contentHash)
	if err == nil {
		return p.recordExactDuplicate(ctx, sub, source, existing)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	doc := &core.Document{
		ContentHash:    contentHash,
		Filename:       sub.Filename,
		NormalizedName: match.NormalizeFilename(sub.Filename),
		DocDate:        sub.DocDate,
		Status:         core.StatusPending,
		Sources:        []core.SourceRef{source},
	}
	doc, err = p.docs.AddDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	return p.escalate(ctx, sub, doc)
}

// recordExactDuplicate appends a duplicate_of row for a byte-identical
// resubmission, keeping the arrival's source metadata for audit.
func (p *Pipeline) recordExactDuplicate(ctx context.Context, sub *Submission, source core.SourceRef, existing *core.Document) (*Decision, error) {
	doc := &core.Document{
		ContentHash:    existing.ContentHash,
		Filename:       sub.Filename,
		NormalizedName: match.NormalizeFilename(sub.Filename),
		DocDate:        sub.DocDate,
		Status:         core.StatusDuplicateOf,
		Sources:        []core.SourceRef{source},
	}
	doc, err := p.docs.AddDocument(ctx, doc)
	if err != nil {
		return nil, err
	}

	edge := &core.DuplicateEdge{
		CandidateId: doc.Id,
		MatchedId:   existing.Id,
		Tier:        core.TierHash,
		Similarity:  1,
		Decision:    core.DecisionMatch,
		RecordedAt:  time.Now(),
	}
	if err := p.docs.AppendDuplicateEdges(ctx, edge); err != nil {
		return nil, err
	}
	p.monitor.TierEvaluated(edge)

	p.logger.Info("exact duplicate detected",
		"document_id", doc.Id,
		"matched_id", existing.Id,
		"filename", sub.Filename)

	decision := &Decision{
		DocumentId: doc.Id,
		Status:     core.StatusDuplicateOf,
		MatchedId:  existing.Id,
		Resolved:   core.TierHash,
	}
	p.monitor.Finish(decision)
	return decision, nil
}

// escalate drives the three comparison tiers in strict cost order, stopping
// at the first confident match. Tier dependency failures degrade to the
// next tier; if nothing matched and any tier failed, the outcome is
// needs_review rather than a silent accept.
func (p *Pipeline) escalate(ctx context.Context, sub *Submission, doc *core.Document) (*Decision, error) {
	anyFailed := false

	// Tier 0: filename. Needs no external service.
	outcome, err := p.evaluateTier(ctx, p.filenameTier, doc)
	if err != nil {
		return nil, err
	}
	if decision := p.terminalFromOutcome(ctx, doc, outcome); decision != nil {
		return p.finish(ctx, doc, decision)
	}
	anyFailed = anyFailed || outcome.failed()
	if err := p.advance(ctx, doc, core.StatusTier0Checked); err != nil {
		return nil, err
	}

	// Tiers 1 and 2 both need extracted text. An extraction failure fails
	// them together; tier 0's recorded result is preserved. A document the
	// extractor reads as empty is unreadable and fails terminally, while a
	// service failure degrades to review.
	if err := p.extractText(ctx, doc, sub.Data); err != nil {
		if recErr := p.recordTierFailures(ctx, doc, core.TierText, core.TierSemantic); recErr != nil {
			return nil, recErr
		}
		if errors.Is(err, ai.ErrEmptyExtraction) {
			p.logger.Warn("document unreadable, failing submission",
				"document_id", doc.Id, "error", err)
			return p.finish(ctx, doc, &Decision{
				DocumentId: doc.Id,
				Status:     core.StatusFailed,
			})
		}
		p.logger.Warn("text extraction failed, flagging for review",
			"document_id", doc.Id, "error", err)
		return p.finish(ctx, doc, p.reviewDecision(doc, nil))
	}

	// Tier 1: token overlap of extracted text.
	outcome, err = p.evaluateTier(ctx, p.textTier, doc)
	if err != nil {
		return nil, err
	}
	if decision := p.terminalFromOutcome(ctx, doc, outcome); decision != nil {
		return p.finish(ctx, doc, decision)
	}
	anyFailed = anyFailed || outcome.failed()
	if err := p.advance(ctx, doc, core.StatusTier1Checked); err != nil {
		return nil, err
	}

	// Tier 2: embedding similarity. The only tier with real external cost.
	outcome, err = p.evaluateTier(ctx, p.semanticTier, doc)
	if err != nil {
		return nil, err
	}
	if decision := p.terminalFromOutcome(ctx, doc, outcome); decision != nil {
		return p.finish(ctx, doc, decision)
	}
	anyFailed = anyFailed || outcome.failed()
	if err := p.advance(ctx, doc, core.StatusTier2Checked); err != nil {
		return nil, err
	}

	if anyFailed {
		// A tier could not be evaluated; accepting now could silently
		// admit a duplicate.
		return p.finish(ctx, doc, p.reviewDecision(doc, nil))
	}

	return p.accept(ctx, doc)
}

// tierOutcome is the evaluated result of one tier.
type tierOutcome struct {
	tier     core.Tier
	decision core.MatchDecision
	best     *core.MatchCandidate
	runnerUp *core.MatchCandidate
}

func (o *tierOutcome) failed() bool {
	return o.decision == core.DecisionFailed
}

// evaluateTier runs one matcher, classifies its result against the tier
// threshold, and records the audit edge. A returned error means the
// registry store is unavailable; matcher dependency failures are folded
// into the outcome instead.
func (p *Pipeline) evaluateTier(ctx context.Context, matcher match.Matcher, doc *core.Document) (*tierOutcome, error) {
	outcome := &tierOutcome{tier: matcher.Tier()}

	best, runnerUp, err := matcher.BestMatch(ctx, doc)
	switch {
	case err != nil:
		p.logger.Warn("tier evaluation failed",
			"document_id", doc.Id, "tier", matcher.Tier(), "error", err)
		outcome.decision = core.DecisionFailed
	case best == nil:
		outcome.decision = core.DecisionNoMatch
	case best.Similarity >= matcher.Threshold():
		outcome.best = best
		outcome.runnerUp = runnerUp
		if runnerUp != nil && best.Similarity-runnerUp.Similarity <= match.AmbiguityWindow {
			outcome.decision = core.DecisionAmbiguous
		} else {
			outcome.decision = core.DecisionMatch
		}
	default:
		outcome.decision = core.DecisionNoMatch
		outcome.best = best
	}

	edge := &core.DuplicateEdge{
		CandidateId: doc.Id,
		Tier:        outcome.tier,
		Decision:    outcome.decision,
		RecordedAt:  time.Now(),
	}
	if outcome.best != nil {
		edge.MatchedId = outcome.best.DocumentId
		edge.Similarity = outcome.best.Similarity
	}
	edges := []*core.DuplicateEdge{edge}

	// An ambiguous tie needs both contenders on record, or a later reviewer
	// sees only half the evidence.
	if outcome.decision == core.DecisionAmbiguous {
		edges = append(edges, &core.DuplicateEdge{
			CandidateId: doc.Id,
			MatchedId:   outcome.runnerUp.DocumentId,
			Tier:        outcome.tier,
			Similarity:  outcome.runnerUp.Similarity,
			Decision:    core.DecisionAmbiguous,
			RecordedAt:  time.Now(),
		})
	}
	if err := p.docs.AppendDuplicateEdges(ctx, edges...); err != nil {
		return nil, err
	}
	for _, e := range edges {
		p.monitor.TierEvaluated(e)
	}

	return outcome, nil
}

// terminalFromOutcome maps a match or ambiguity to its terminal decision.
// A no-match or failed outcome returns nil: the cascade continues.
func (p *Pipeline) terminalFromOutcome(ctx context.Context, doc *core.Document, outcome *tierOutcome) *Decision {
	switch outcome.decision {
	case core.DecisionMatch:
		p.logger.Info("duplicate detected",
			"document_id", doc.Id,
			"matched_id", outcome.best.DocumentId,
			"tier", outcome.tier,
			"similarity", outcome.best.Similarity)
		return &Decision{
			DocumentId: doc.Id,
			Status:     core.StatusDuplicateOf,
			MatchedId:  outcome.best.DocumentId,
			Resolved:   outcome.tier,
		}
	case core.DecisionAmbiguous:
		p.logger.Warn("ambiguous match, flagging for review",
			"document_id", doc.Id,
			"tier", outcome.tier,
			"best", outcome.best.DocumentId,
			"runner_up", outcome.runnerUp.DocumentId)
		return p.reviewDecision(doc, []*core.MatchCandidate{outcome.best, outcome.runnerUp})
	}
	return nil
}

func (p *Pipeline) reviewDecision(doc *core.Document, candidates []*core.MatchCandidate) *Decision {
	return &Decision{
		DocumentId: doc.Id,
		Status:     core.StatusNeedsReview,
		Candidates: candidates,
	}
}

// advance persists an intermediate tier-checked status.
func (p *Pipeline) advance(ctx context.Context, doc *core.Document, status core.DocumentStatus) error {
	doc.Status = status
	_, err := p.docs.UpdateDocument(ctx, doc)
	return err
}

// finish persists the terminal status carried by the decision.
func (p *Pipeline) finish(ctx context.Context, doc *core.Document, decision *Decision) (*Decision, error) {
	doc.Status = decision.Status
	if _, err := p.docs.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}
	p.monitor.Finish(decision)
	return decision, nil
}

// recordTierFailures appends failed edges for tiers that could not be
// evaluated at all.
func (p *Pipeline) recordTierFailures(ctx context.Context, doc *core.Document, tiers ...core.Tier) error {
	edges := make([]*core.DuplicateEdge, len(tiers))
	for i, tier := range tiers {
		edges[i] = &core.DuplicateEdge{
			CandidateId: doc.Id,
			Tier:        tier,
			Decision:    core.DecisionFailed,
			RecordedAt:  time.Now(),
		}
	}
	if err := p.docs.AppendDuplicateEdges(ctx, edges...); err != nil {
		return err
	}
	for _, edge := range edges {
		p.monitor.TierEvaluated(edge)
	}
	return nil
}

// extractText populates doc.Text via the extraction service, retrying with
// backoff. The result may be partial or garbled; only an unavailable
// service or an empty result is a failure.
func (p *Pipeline) extractText(ctx context.Context, doc *core.Document, data []byte) error {
	if doc.TextExtracted() {
		return nil
	}
	var text string
	err := RetryWithBackoff(ctx, func() error {
		var err error
		text, err = p.provider.TextExtractor().ExtractText(ctx, doc.Filename, data)
		return err
	}, p.maxAttempts, p.baseDelay)
	if err != nil {
		return err
	}
	doc.Text = text
	return nil
}

// accept marks the document accepted, then scores and correlates it.
// Classification failures contribute zero scores rather than blocking
// acceptance.
func (p *Pipeline) accept(ctx context.Context, doc *core.Document) (*Decision, error) {
	doc.Status = core.StatusAccepted
	if _, err := p.docs.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}

	classification := p.classify(ctx, doc)
	if doc.Category == "" && classification.Category != "" {
		doc.Category = string(classification.Category)
		if _, err := p.docs.UpdateDocument(ctx, doc); err != nil {
			return nil, err
		}
	}

	record := scoring.Score(doc.Id, classification)
	if err := p.docs.AppendScoreRecord(ctx, record); err != nil {
		return nil, err
	}

	if _, err := p.correlator.CorrelateDocument(ctx, doc, record); err != nil {
		return nil, err
	}

	p.logger.Info("document accepted",
		"document_id", doc.Id,
		"relevancy", record.Relevancy)

	decision := &Decision{
		DocumentId: doc.Id,
		Status:     core.StatusAccepted,
		Scores:     record,
	}
	p.monitor.Finish(decision)
	return decision, nil
}

// classify asks the classification service about the document's text.
// A classifier failure yields an empty classification: missing category
// data contributes zero, never an error.
func (p *Pipeline) classify(ctx context.Context, doc *core.Document) *ai.Classification {
	classification, err := p.provider.Classifier().Classify(ctx, doc.Text)
	if err != nil {
		p.logger.Warn("classification failed, scoring with empty inputs",
			"document_id", doc.Id, "error", err)
		return &ai.Classification{Category: ai.CategoryUnknown}
	}
	return classification
}

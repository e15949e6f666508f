package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/ai/mock"
	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage/badger"
)

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *badger.DocumentStore, *mock.MockProvider) {
	t.Helper()

	docs, claims := badger.NewMemoryRepositories(t)
	provider := mock.NewMockProvider().(*mock.MockProvider)

	p, err := NewPipeline(docs, claims, provider, append([]Option{WithRetry(1, 0)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	return p, docs, provider
}

func TestSubmitValidation(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := p.Submit(ctx, &Submission{Filename: "a.pdf"})
	assert.ErrorIs(t, err, ErrEmptySubmission)

	_, err = p.Submit(ctx, &Submission{Data: []byte("x")})
	assert.ErrorIs(t, err, ErrMissingFilename)
}

func TestFirstSubmissionAccepted(t *testing.T) {
	p, docs, _ := newTestPipeline(t)
	ctx := context.Background()

	decision, err := p.Submit(ctx, &Submission{
		Filename: "motion_to_dismiss.pdf",
		Data:     []byte("motion to dismiss the complaint for failure to state a claim"),
		Origin:   "mobile",
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusAccepted, decision.Status)
	require.NotNil(t, decision.Scores)

	doc, err := docs.GetDocument(ctx, decision.DocumentId)
	require.NoError(t, err)
	assert.Equal(t, core.StatusAccepted, doc.Status)
	assert.True(t, doc.TextExtracted())
	assert.NotEmpty(t, doc.Vector, "the semantic tier's vector should be persisted")

	_, err = docs.GetScoreRecord(ctx, decision.DocumentId)
	assert.NoError(t, err)
}

func TestByteIdenticalResubmissionIsDuplicate(t *testing.T) {
	// Scenario: the same PDF bytes uploaded under two different filenames.
	p, docs, provider := newTestPipeline(t)
	ctx := context.Background()

	data := []byte("notice of entry of judgment served upon all parties")
	first, err := p.Submit(ctx, &Submission{Filename: "Motion.pdf", Data: data, Origin: "bulk_scan"})
	require.NoError(t, err)
	require.Equal(t, core.StatusAccepted, first.Status)

	extractorCallsAfterFirst := provider.GetMockExtractor().CallCount()

	docDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	second, err := p.Submit(ctx, &Submission{
		Filename: "IMG_20240101.pdf",
		Data:     data,
		Origin:   "mobile",
		DocDate:  &docDate,
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusDuplicateOf, second.Status)
	assert.Equal(t, first.DocumentId, second.MatchedId)
	assert.Equal(t, core.TierHash, second.Resolved)

	// The pre-check is a pure lookup: no extraction, no embedding.
	assert.Equal(t, extractorCallsAfterFirst, provider.GetMockExtractor().CallCount(),
		"exact duplicate should not trigger extraction")

	// The first document remains accepted.
	doc, err := docs.GetDocument(ctx, first.DocumentId)
	require.NoError(t, err)
	assert.Equal(t, core.StatusAccepted, doc.Status)

	// The duplicate row keeps the arrival's metadata, document date
	// included.
	dup, err := docs.GetDocument(ctx, second.DocumentId)
	require.NoError(t, err)
	require.NotNil(t, dup.DocDate)
	assert.True(t, dup.DocDate.Equal(docDate))

	// The duplicate row records the hash-tier edge.
	edges, err := docs.GetDuplicateEdges(ctx, second.DocumentId)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, core.TierHash, edges[0].Tier)
	assert.Equal(t, core.DecisionMatch, edges[0].Decision)
}

func TestFilenameTierShortCircuits(t *testing.T) {
	p, _, provider := newTestPipeline(t)
	ctx := context.Background()

	first, err := p.Submit(ctx, &Submission{
		Filename: "lease_agreement.pdf",
		Data:     []byte("residential lease agreement for the premises"),
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusAccepted, first.Status)

	provider.GetMockExtractor().Reset()
	provider.GetMockEmbedder().Reset()

	// Different bytes, near-identical filename: tier 0 resolves it and the
	// expensive tiers never run.
	second, err := p.Submit(ctx, &Submission{
		Filename: "Copy of lease_agreement.pdf",
		Data:     []byte("residential lease agreement for the premises (rescanned)"),
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusDuplicateOf, second.Status)
	assert.Equal(t, core.TierFilename, second.Resolved)
	assert.Zero(t, provider.GetMockExtractor().CallCount(),
		"tier 0 match should never trigger extraction")
	assert.Zero(t, provider.GetMockEmbedder().CallCount(),
		"tier 0 match should never trigger embedding")
}

func TestTextTierResolvesRescan(t *testing.T) {
	// Scenario: OCR text with ~90% token overlap, different filename and
	// hash. Resolved at tier 1; tier 2 never invoked.
	p, _, provider := newTestPipeline(t)
	ctx := context.Background()

	original := "tenant received written notice terminating tenancy effective march " +
		"notice served personally pursuant applicable statute requiring sixty days warning"
	first, err := p.Submit(ctx, &Submission{Filename: "deposition_smith.pdf", Data: []byte(original)})
	require.NoError(t, err)
	require.Equal(t, core.StatusAccepted, first.Status)

	provider.GetMockEmbedder().Reset()

	rescan := original + " scanned"
	second, err := p.Submit(ctx, &Submission{Filename: "IMG_4412.jpg", Data: []byte(rescan)})
	require.NoError(t, err)
	require.Equal(t, core.StatusDuplicateOf, second.Status)
	assert.Equal(t, core.TierText, second.Resolved)
	assert.Zero(t, provider.GetMockEmbedder().CallCount(),
		"tier 1 match should never trigger embedding")
}

func TestThresholdBoundaryCountsAsMatch(t *testing.T) {
	// Normalized names "aaaaaaaaaa" vs "aaaaaaabbb": edit distance 6 over
	// combined length 20 gives similarity exactly 0.70.
	p, _, _ := newTestPipeline(t)
	ctx := context.Background()

	first, err := p.Submit(ctx, &Submission{
		Filename: "aaaaaaaaaa.pdf",
		Data:     []byte("completely unrelated first text body"),
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusAccepted, first.Status)

	second, err := p.Submit(ctx, &Submission{
		Filename: "aaaaaaabbb.pdf",
		Data:     []byte("entirely different second text body"),
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusDuplicateOf, second.Status,
		"boundary similarity should count as a match")
	assert.Equal(t, core.TierFilename, second.Resolved)
}

func TestRaisedThresholdEscalatesPastFilenameTier(t *testing.T) {
	docs, claims := badger.NewMemoryRepositories(t)
	provider := mock.NewMockProvider().(*mock.MockProvider)
	ctx := context.Background()

	seed, err := NewPipeline(docs, claims, provider, WithRetry(1, 0))
	require.NoError(t, err)
	t.Cleanup(seed.Release)

	first, err := seed.Submit(ctx, &Submission{
		Filename: "aaaaaaaaaa.pdf",
		Data:     []byte("completely unrelated first text body"),
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusAccepted, first.Status)

	// With the filename threshold raised above the pair's 0.70 similarity,
	// the same submission that matched at tier 0 under defaults now
	// escalates and, sharing nothing else, is accepted.
	strict, err := NewPipeline(docs, claims, provider,
		WithRetry(1, 0), WithThresholds(0.75, 0, 0))
	require.NoError(t, err)
	t.Cleanup(strict.Release)

	second, err := strict.Submit(ctx, &Submission{
		Filename: "aaaaaaabbb.pdf",
		Data:     []byte("entirely different second text body"),
	})
	require.NoError(t, err)
	assert.Equal(t, core.StatusAccepted, second.Status)
}

func TestWithThresholdsRejectsOutOfRange(t *testing.T) {
	docs, claims := badger.NewMemoryRepositories(t)
	provider := mock.NewMockProvider().(*mock.MockProvider)

	_, err := NewPipeline(docs, claims, provider, WithThresholds(1.5, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewPipeline(docs, claims, provider, WithThresholds(0, -0.1, 0))
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestExtractionFailureFlagsForReview(t *testing.T) {
	// Scenario: extraction service unavailable. Both text tiers are
	// recorded as failed; tier 0's result is preserved.
	p, docs, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockExtractor().ExtractTextFunc = func(ctx context.Context, filename string, data []byte) (string, error) {
		return "", errors.New("connection refused")
	}

	decision, err := p.Submit(ctx, &Submission{
		Filename: "unreadable_scan.pdf",
		Data:     []byte{0xff, 0xd8, 0xff, 0xe0},
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusNeedsReview, decision.Status)

	edges, err := docs.GetDuplicateEdges(ctx, decision.DocumentId)
	require.NoError(t, err)
	require.Len(t, edges, 3, "tier0 + two failures")
	assert.Equal(t, core.TierFilename, edges[0].Tier)
	assert.Equal(t, core.DecisionNoMatch, edges[0].Decision)
	assert.Equal(t, core.TierText, edges[1].Tier)
	assert.Equal(t, core.DecisionFailed, edges[1].Decision)
	assert.Equal(t, core.TierSemantic, edges[2].Tier)
	assert.Equal(t, core.DecisionFailed, edges[2].Decision)
}

func TestUnreadableSubmissionFails(t *testing.T) {
	// An extraction that produces no text at all means the document itself
	// is unreadable: that is terminal, not a review case.
	p, docs, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockExtractor().ExtractTextFunc = func(ctx context.Context, filename string, data []byte) (string, error) {
		return "", ai.ErrEmptyExtraction
	}

	decision, err := p.Submit(ctx, &Submission{
		Filename: "blank_page.pdf",
		Data:     []byte{0x00, 0x01, 0x02},
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusFailed, decision.Status)

	doc, err := docs.GetDocument(ctx, decision.DocumentId)
	require.NoError(t, err)
	assert.Equal(t, core.StatusFailed, doc.Status)

	edges, err := docs.GetDuplicateEdges(ctx, decision.DocumentId)
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, core.DecisionFailed, edges[1].Decision)
	assert.Equal(t, core.DecisionFailed, edges[2].Decision)
}

func TestEmbedderFailureDegradesToReview(t *testing.T) {
	p, _, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}

	decision, err := p.Submit(ctx, &Submission{
		Filename: "expert_report.pdf",
		Data:     []byte("expert analysis of the structural damage"),
	})
	require.NoError(t, err)
	// No tier matched but one could not be evaluated: accepting now could
	// silently admit a duplicate.
	assert.Equal(t, core.StatusNeedsReview, decision.Status)
}

func TestAmbiguousTieFlagsBothCandidates(t *testing.T) {
	p, docs, _ := newTestPipeline(t)
	ctx := context.Background()

	// Two accepted documents with identical normalized names produce tied
	// tier 0 similarities for a third near-copy.
	for _, filename := range []string{"settlement_draft_1.pdf", "settlement_draft_2.pdf"} {
		_, err := docs.AddDocument(ctx, &core.Document{
			ContentHash:    core.HashContent([]byte(filename)),
			Filename:       filename,
			NormalizedName: "settlement draft",
			Status:         core.StatusAccepted,
		})
		require.NoError(t, err)
	}

	decision, err := p.Submit(ctx, &Submission{
		Filename: "settlement_draft_3.pdf",
		Data:     []byte("settlement draft third revision"),
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusNeedsReview, decision.Status)
	require.Len(t, decision.Candidates, 2, "both tied candidates attached")
	assert.Less(t, decision.Candidates[0].DocumentId, decision.Candidates[1].DocumentId,
		"candidates ordered by ID")

	// Both contenders are persisted, so a later reviewer sees the full tie.
	edges, err := docs.GetDuplicateEdges(ctx, decision.DocumentId)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	for i, edge := range edges {
		assert.Equal(t, core.TierFilename, edge.Tier)
		assert.Equal(t, core.DecisionAmbiguous, edge.Decision)
		assert.Equal(t, decision.Candidates[i].DocumentId, edge.MatchedId)
	}
}

func TestConcurrentIdenticalSubmissionsNotDoubleAccepted(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	ctx := context.Background()

	data := []byte("affidavit of service executed before a notary public")
	subs := []*Submission{
		{Filename: "affidavit.pdf", Data: data, Origin: "mobile"},
		{Filename: "affidavit_scan.pdf", Data: data, Origin: "bulk_scan"},
	}

	results := p.SubmitAll(ctx, subs)

	accepted, duplicates := 0, 0
	for _, result := range results {
		require.NoError(t, result.Err)
		switch result.Decision.Status {
		case core.StatusAccepted:
			accepted++
		case core.StatusDuplicateOf:
			duplicates++
		default:
			t.Errorf("unexpected status %s", result.Decision.Status)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, duplicates)
}

func TestSubmitAfterRelease(t *testing.T) {
	p, _, _ := newTestPipeline(t)
	p.Release()

	_, err := p.Submit(context.Background(), &Submission{Filename: "a.pdf", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrReleased)
}

func TestAcceptedDocumentCorrelatedAgainstClaims(t *testing.T) {
	docs, claims := badger.NewMemoryRepositories(t)
	provider := mock.NewMockProvider().(*mock.MockProvider)

	p, err := NewPipeline(docs, claims, provider, WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(p.Release)
	ctx := context.Background()

	added, err := claims.AddClaims(ctx, &core.ClaimDefinition{
		Text:      "claimant never traveled abroad",
		ClaimType: "presence",
		Keywords:  []string{"jamaica", "travel"},
	})
	require.NoError(t, err)

	decision, err := p.Submit(ctx, &Submission{
		Filename: "itinerary.pdf",
		Data:     []byte("travel itinerary for the flight to jamaica"),
	})
	require.NoError(t, err)
	require.Equal(t, core.StatusAccepted, decision.Status)

	records, err := docs.GetCorrelationsByClaim(ctx, added[0].Id)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].KeywordMatches, "both keywords should match")
}

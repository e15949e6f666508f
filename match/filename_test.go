package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage/badger"
)

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "lease_agreement.pdf", "lease agreement"},
		{"capture prefix", "IMG_20240315_lease_agreement.jpg", "lease agreement"},
		{"scan prefix", "SCAN0042 lease agreement.pdf", "lease agreement"},
		{"copy marker", "Copy of lease_agreement.pdf", "lease agreement"},
		{"nested copy markers", "Copy of Copy of lease_agreement.pdf", "lease agreement"},
		{"digit runs stripped", "lease_agreement_v2_final3.pdf", "lease agreement v final"},
		{"path stripped", "/uploads/batch7/notice.pdf", "notice"},
		{"only noise", "IMG_20240315.jpg", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFilename(tt.input))
		})
	}
}

func TestFilenameSimilarity(t *testing.T) {
	assert.Equal(t, float32(1), FilenameSimilarity("lease agreement", "lease agreement"))
	assert.Equal(t, float32(1), FilenameSimilarity("", ""),
		"two empty fingerprints are indistinguishable")
	assert.Equal(t, float32(0), FilenameSimilarity("lease agreement", ""))

	near := FilenameSimilarity("lease agreement", "lease agrement")
	assert.GreaterOrEqual(t, near, float32(0.9), "near-identical names should score high")

	far := FilenameSimilarity("lease agreement", "medical records")
	assert.Less(t, far, near, "unrelated names should score lower")
}

func TestFilenameMatcherFindsBestAndRunnerUp(t *testing.T) {
	docs, _ := badger.NewMemoryRepositories(t)
	ctx := context.Background()

	add := func(filename string) *core.Document {
		doc := &core.Document{
			ContentHash:    core.HashContent([]byte(filename)),
			Filename:       filename,
			NormalizedName: NormalizeFilename(filename),
			Status:         core.StatusAccepted,
		}
		added, err := docs.AddDocument(ctx, doc)
		require.NoError(t, err)
		return added
	}

	exact := add("lease_agreement.pdf")
	add("medical_records_2024.pdf")

	matcher := NewFilenameMatcher(docs)
	assert.Equal(t, core.TierFilename, matcher.Tier())

	incoming := &core.Document{
		ContentHash:    core.HashContent([]byte("incoming")),
		Filename:       "Copy of lease_agreement.pdf",
		NormalizedName: NormalizeFilename("Copy of lease_agreement.pdf"),
		Status:         core.StatusPending,
	}
	best, runnerUp, err := matcher.BestMatch(ctx, incoming)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, exact.Id, best.DocumentId)
	assert.GreaterOrEqual(t, best.Similarity, matcher.Threshold(),
		"a normalized copy should clear the threshold")
	require.NotNil(t, runnerUp, "second accepted document should be the runner-up")
	assert.Less(t, runnerUp.Similarity, best.Similarity)
}

func TestFilenameMatcherEmptyCorpus(t *testing.T) {
	docs, _ := badger.NewMemoryRepositories(t)

	matcher := NewFilenameMatcher(docs)
	best, runnerUp, err := matcher.BestMatch(context.Background(), &core.Document{
		ContentHash: "abc",
		Filename:    "anything.pdf",
		Status:      core.StatusPending,
	})
	require.NoError(t, err)
	assert.Nil(t, best)
	assert.Nil(t, runnerUp)
}

func TestWithThresholdOverridesDefault(t *testing.T) {
	docs, _ := badger.NewMemoryRepositories(t)

	matcher := NewFilenameMatcher(docs, WithThreshold(0.9))
	assert.Equal(t, float32(0.9), matcher.Threshold())

	// Out-of-range overrides keep the tier default.
	assert.Equal(t, DefaultFilenameThreshold, NewFilenameMatcher(docs, WithThreshold(0)).Threshold())
	assert.Equal(t, DefaultFilenameThreshold, NewFilenameMatcher(docs, WithThreshold(1.5)).Threshold())

	assert.Equal(t, float32(0.88), NewTextMatcher(docs, WithThreshold(0.88)).Threshold())
}

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/core"
)

func TestScoreCourtOrderWithEntities(t *testing.T) {
	classification := &ai.Classification{
		Category: ai.CategoryCourtOrder,
		Entities: map[ai.EntityCategory]int{
			ai.EntityNamedParty:   2, // 200
			ai.EntityCriticalDate: 1, // 75
		},
		ElementMatches: 1,    // 100
		Admissibility:  true, // 75
	}

	record := Score(42, classification)
	assert.Equal(t, core.ID(42), record.DocumentId)
	assert.Equal(t, 275, record.Micro)
	assert.Equal(t, 200, record.Macro)
	assert.Equal(t, 175, record.Legal)
	// round((275+200+175)/3) = round(216.67) = 217
	assert.Equal(t, 217, record.Relevancy)
	assert.False(t, record.ComputedAt.IsZero(), "ComputedAt should be stamped")
}

func TestScoreEmptyClassification(t *testing.T) {
	record := Score(1, &ai.Classification{Category: ai.CategoryUnknown})
	assert.Equal(t, 0, record.Micro)
	assert.Equal(t, 0, record.Macro)
	assert.Equal(t, 0, record.Legal)
	assert.Equal(t, 0, record.Relevancy)
}

func TestScoreDimensionsClampAt999(t *testing.T) {
	classification := &ai.Classification{
		Category: ai.CategoryCourtOrder,
		Entities: map[ai.EntityCategory]int{
			ai.EntityDirectEvidence: 50, // 7500 before clamping
		},
		ElementMatches:       20, // 2000 before clamping
		Admissibility:        true,
		ProceduralCompliance: true,
		StrategicValue:       true,
	}

	record := Score(1, classification)
	assert.Equal(t, 999, record.Micro)
	assert.Equal(t, 999, record.Legal)
	assert.LessOrEqual(t, record.Relevancy, 999)
	require.NoError(t, core.ValidateScoreRecord(record))
}

func TestScoreIgnoresUnknownEntitiesAndNegativeCounts(t *testing.T) {
	classification := &ai.Classification{
		Category: ai.CategoryCorrespondence,
		Entities: map[ai.EntityCategory]int{
			ai.EntityNamedParty:        1,
			ai.EntityCategory("alien"): 7,
			ai.EntityCriticalDate:      -3,
		},
	}

	record := Score(1, classification)
	assert.Equal(t, 100, record.Micro, "only the named party should count")
}

func TestScoreIsDeterministic(t *testing.T) {
	classification := &ai.Classification{
		Category: ai.CategoryTranscript,
		Entities: map[ai.EntityCategory]int{
			ai.EntityExpertOpinion:      2,
			ai.EntityStatutoryReference: 3,
		},
		StrategicValue: true,
	}

	first := Score(9, classification)
	for i := 0; i < 10; i++ {
		again := Score(9, classification)
		require.Equal(t, first.Micro, again.Micro)
		require.Equal(t, first.Macro, again.Macro)
		require.Equal(t, first.Legal, again.Legal)
		require.Equal(t, first.Relevancy, again.Relevancy)
	}
}

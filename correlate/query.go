package correlate

import (
	"context"
	"slices"

	"github.com/poiesic/casefile/core"
)

// TopContradictions returns the strongest correlations for a claim, ranked
// by contradiction score descending with ties broken by lowest document ID.
func (c *Correlator) TopContradictions(ctx context.Context, claimId core.ID, n int) ([]*core.CorrelationRecord, error) {
	records, err := c.docs.GetCorrelationsByClaim(ctx, claimId)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b *core.CorrelationRecord) int {
		if a.ContradictionScore != b.ContradictionScore {
			return b.ContradictionScore - a.ContradictionScore
		}
		if a.DocumentId < b.DocumentId {
			return -1
		}
		if a.DocumentId > b.DocumentId {
			return 1
		}
		return 0
	})

	if n > 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

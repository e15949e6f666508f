package correlate

import (
	"context"
	"math"

	"github.com/poiesic/casefile/core"
)

// directContradictionFloor is the contradiction score at which a document
// counts as directly contradicting the claim.
const directContradictionFloor = 900

// Prosecutability term weights. Volume, average strength, direct
// contradictions, and corroboration each contribute a capped share of the
// 0..100 scale.
const (
	volumePerDoc        = 5
	volumeCap           = 25
	averageShare        = 35
	directPerDoc        = 15
	directCap           = 25
	corroboratingPerDoc = 5
	corroboratingCap    = 15
)

// ClaimStats aggregates every correlation recorded for one claim.
type ClaimStats struct {
	ClaimId              core.ID
	DocumentCount        int
	AverageContradiction float64
	DirectContradictions int // documents scoring >= 900
	CorroboratingDocs    int // documents whose evidence type matched
	Prosecutability      int // 0..100
}

// Stats computes per-claim aggregates from the recorded correlations.
// A claim with no correlations yields all-zero stats, not an error.
func (c *Correlator) Stats(ctx context.Context, claimId core.ID) (*ClaimStats, error) {
	records, err := c.docs.GetCorrelationsByClaim(ctx, claimId)
	if err != nil {
		return nil, err
	}

	stats := &ClaimStats{ClaimId: claimId}
	if len(records) == 0 {
		return stats, nil
	}

	total := 0
	for _, record := range records {
		total += record.ContradictionScore
		if record.ContradictionScore >= directContradictionFloor {
			stats.DirectContradictions++
		}
		if record.TypeMatchBonus > 0 {
			stats.CorroboratingDocs++
		}
	}
	stats.DocumentCount = len(records)
	stats.AverageContradiction = float64(total) / float64(len(records))
	stats.Prosecutability = prosecutability(stats)
	return stats, nil
}

// prosecutability folds the aggregates into a single 0..100 case-strength
// estimate: a document-volume term, an average-contradiction term, a
// direct-contradiction term, and a corroborating-evidence term, each capped.
func prosecutability(stats *ClaimStats) int {
	score := capped(stats.DocumentCount*volumePerDoc, volumeCap)
	score += int(math.Round(stats.AverageContradiction / 999 * averageShare))
	score += capped(stats.DirectContradictions*directPerDoc, directCap)
	score += capped(stats.CorroboratingDocs*corroboratingPerDoc, corroboratingCap)

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

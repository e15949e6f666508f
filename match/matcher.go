package match

import (
	"context"

	"github.com/poiesic/casefile/core"
)

// Default thresholds for each tier of the cascade. A tier matches when the
// best candidate's similarity is greater than or equal to its threshold.
const (
	DefaultFilenameThreshold float32 = 0.70
	DefaultTextThreshold     float32 = 0.85
	DefaultSemanticThreshold float32 = 0.95
)

// AmbiguityWindow is how close the runner-up must be to the best candidate
// for a tier outcome to be considered ambiguous.
const AmbiguityWindow float32 = 0.01

// Option overrides a matcher's defaults.
type Option func(thresholdSetter)

type thresholdSetter interface {
	setThreshold(threshold float32)
}

// WithThreshold overrides the tier's inclusive similarity threshold.
// Values outside (0, 1] are ignored and the tier default stays in place.
func WithThreshold(threshold float32) Option {
	return func(m thresholdSetter) {
		if threshold > 0 && threshold <= 1 {
			m.setThreshold(threshold)
		}
	}
}

// Matcher evaluates one tier of the duplicate-detection cascade for a
// candidate document against the accepted corpus.
type Matcher interface {
	// Tier identifies which cascade stage this matcher implements.
	Tier() core.Tier

	// Threshold is the inclusive similarity bound for a match at this tier.
	Threshold() float32

	// BestMatch returns the best and second-best accepted candidates for
	// the document, with ties broken by lowest document ID. Either may be
	// nil when the corpus has no candidate to offer.
	BestMatch(ctx context.Context, doc *core.Document) (best, runnerUp *core.MatchCandidate, err error)
}

// topTwo tracks the two strongest candidates seen so far. Equal similarities
// resolve to the lowest document ID so repeated runs are deterministic.
type topTwo struct {
	best     *core.MatchCandidate
	runnerUp *core.MatchCandidate
}

func (t *topTwo) observe(id core.ID, similarity float32) {
	cand := &core.MatchCandidate{DocumentId: id, Similarity: similarity}
	if t.best == nil || better(cand, t.best) {
		t.runnerUp = t.best
		t.best = cand
		return
	}
	if t.runnerUp == nil || better(cand, t.runnerUp) {
		t.runnerUp = cand
	}
}

func better(a, b *core.MatchCandidate) bool {
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}
	return a.DocumentId < b.DocumentId
}

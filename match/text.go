package match

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage"
)

// maxTokens bounds how much of a document's text participates in the
// token-overlap comparison. OCR output for long filings runs to hundreds of
// pages; the first portion is enough to identify a re-scan.
const maxTokens = 1000

// Stop words carry no identity and would inflate overlap between unrelated
// filings.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenSet splits text into words, lowercases, trims punctuation, drops stop
// words, and returns the set of the first maxTokens surviving tokens.
func tokenSet(text string) map[string]bool {
	words := strings.Fields(text)
	set := make(map[string]bool)

	seen := 0
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned == "" || stopWords[cleaned] {
			continue
		}
		set[cleaned] = true
		seen++
		if seen >= maxTokens {
			break
		}
	}
	return set
}

// jaccard computes set overlap as |A∩B| / |A∪B|. Two empty sets are treated
// as identical.
func jaccard(a, b map[string]bool) float32 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float32(intersection) / float32(union)
}

// TextMatcher is the middle cascade tier. It compares token sets of the
// extracted text. Candidate token sets are memoized so a burst of
// ingestions does not re-tokenize the same corpus on every submission.
type TextMatcher struct {
	docs      storage.DocumentRepository
	threshold float32
	tokens    *gocache.Cache
}

var _ Matcher = (*TextMatcher)(nil)

// NewTextMatcher creates the text tier.
func NewTextMatcher(docs storage.DocumentRepository, opts ...Option) *TextMatcher {
	m := &TextMatcher{
		docs:      docs,
		threshold: DefaultTextThreshold,
		tokens:    gocache.New(5*time.Minute, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *TextMatcher) Tier() core.Tier        { return core.TierText }
func (m *TextMatcher) Threshold() float32     { return m.threshold }
func (m *TextMatcher) setThreshold(t float32) { m.threshold = t }

// BestMatch compares the document's token set against every accepted
// document that has extracted text. The document itself must already have
// text; extraction is the caller's job.
func (m *TextMatcher) BestMatch(ctx context.Context, doc *core.Document) (*core.MatchCandidate, *core.MatchCandidate, error) {
	if !doc.TextExtracted() {
		return nil, nil, fmt.Errorf("%w: document %d", ErrNoText, doc.Id)
	}

	accepted, err := m.docs.GetDocumentsByStatus(ctx, core.StatusAccepted)
	if err != nil {
		return nil, nil, err
	}

	docTokens := tokenSet(doc.Text)

	var top topTwo
	for _, candidate := range accepted {
		if candidate.Id == doc.Id || !candidate.TextExtracted() {
			continue
		}
		top.observe(candidate.Id, jaccard(docTokens, m.candidateTokens(candidate)))
	}
	return top.best, top.runnerUp, nil
}

// candidateTokens returns the memoized token set for an accepted document.
// The cache key includes UpdatedAt so a re-extracted document is never
// served stale tokens.
func (m *TextMatcher) candidateTokens(doc *core.Document) map[string]bool {
	key := fmt.Sprintf("%d:%d", doc.Id, doc.UpdatedAt.UnixMicro())
	if cached, found := m.tokens.Get(key); found {
		return cached.(map[string]bool)
	}
	set := tokenSet(doc.Text)
	m.tokens.Set(key, set, gocache.DefaultExpiration)
	return set
}

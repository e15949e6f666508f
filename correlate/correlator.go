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

package correlate

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage"
)

const (
	maxContradiction = 999
	keywordStep      = 20
	keywordCap       = 100
	typeMatchBonus   = 50

	// nearWindowDays is how far outside a claim's date range a document's
	// date may fall and still be correlated against the claim.
	nearWindowDays = 90
)

// Correlator scores accepted documents against the tracked claim registry.
type Correlator struct {
	docs   storage.DocumentRepository
	claims storage.ClaimRepository
	logger *slog.Logger
}

// NewCorrelator creates a correlator over the given repositories.
func NewCorrelator(docs storage.DocumentRepository, claims storage.ClaimRepository) *Correlator {
	return &Correlator{
		docs:   docs,
		claims: claims,
		logger: slog.Default(),
	}
}

// CorrelateDocument scores one accepted document against every claim whose
// date range is near the document's date, and persists the resulting
// records. Claims with no date constraint always participate.
func (c *Correlator) CorrelateDocument(ctx context.Context, doc *core.Document, score *core.ScoreRecord) ([]*core.CorrelationRecord, error) {
	claimDefs, err := c.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}

	var records []*core.CorrelationRecord
	for _, claim := range claimDefs {
		if !claimNear(claim, doc.DocDate) {
			continue
		}
		records = append(records, buildRecord(doc, claim, score.Relevancy))
	}
	if len(records) == 0 {
		return nil, nil
	}

	if err := c.docs.AppendCorrelations(ctx, records...); err != nil {
		return nil, err
	}
	c.logger.Debug("correlated document against claims",
		"document_id", doc.Id,
		"claims_scored", len(records))
	return records, nil
}

// buildRecord computes a single correlation row. The formula is pure so
// rescoring the same inputs always produces the same record.
func buildRecord(doc *core.Document, claim *core.ClaimDefinition, relevancy int) *core.CorrelationRecord {
	matches := KeywordMatches(doc.Text, claim.Keywords)
	dateRelevance := DateRelevance(doc.DocDate, claim.DateFrom, claim.DateTo)

	bonus := 0
	if claim.ExpectedEvidenceType != "" && doc.Category == claim.ExpectedEvidenceType {
		bonus = typeMatchBonus
	}

	score := relevancy + keywordTerm(matches) + dateRelevance + bonus
	if score > maxContradiction {
		score = maxContradiction
	}
	if score < 0 {
		score = 0
	}

	return &core.CorrelationRecord{
		DocumentId:         doc.Id,
		ClaimId:            claim.Id,
		ContradictionScore: score,
		KeywordMatches:     matches,
		DateRelevance:      dateRelevance,
		TypeMatchBonus:     bonus,
		RecordedAt:         time.Now(),
	}
}

func keywordTerm(matches int) int {
	term := matches * keywordStep
	if term > keywordCap {
		return keywordCap
	}
	return term
}

// KeywordMatches counts how many distinct claim keywords appear in the text,
// case-insensitively with word-boundary matching. "travel" does not match
// "traveler".
func KeywordMatches(text string, keywords []string) int {
	if text == "" || len(keywords) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(keywords))
	count := 0
	for _, keyword := range keywords {
		keyword = strings.ToLower(keyword)
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			count++
		}
	}
	return count
}

// DateRelevance scores how close a document's date sits to a claim's range:
// 100 inside the range, otherwise 100 minus the days to the nearest
// boundary, floored at 0. A document without an extracted date scores 0,
// as does a claim without a date constraint.
func DateRelevance(docDate *time.Time, from, to time.Time) int {
	if docDate == nil || (from.IsZero() && to.IsZero()) {
		return 0
	}
	days := daysOutsideRange(*docDate, from, to)
	if days <= 0 {
		return 100
	}
	relevance := 100 - days
	if relevance < 0 {
		return 0
	}
	return relevance
}

// claimNear reports whether the document's date is inside or within the
// near window of the claim's range. Unknown dates and unconstrained claims
// always correlate.
func claimNear(claim *core.ClaimDefinition, docDate *time.Time) bool {
	if docDate == nil {
		return true
	}
	if claim.DateFrom.IsZero() && claim.DateTo.IsZero() {
		return true
	}
	return daysOutsideRange(*docDate, claim.DateFrom, claim.DateTo) <= nearWindowDays
}

// daysOutsideRange returns 0 when date lies inside [from, to], otherwise
// the whole days to the nearest boundary. A zero boundary is open.
func daysOutsideRange(date time.Time, from, to time.Time) int {
	if !from.IsZero() && date.Before(from) {
		return int(from.Sub(date).Hours() / 24)
	}
	if !to.IsZero() && date.After(to) {
		return int(date.Sub(to).Hours() / 24)
	}
	return 0
}

package core

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// HashContent computes the hex-encoded BLAKE2b-256 hash of raw document bytes.
// Byte-identical submissions always produce identical hashes, which is the
// basis for the exact-duplicate check.
func HashContent(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentStatus tracks a document through the duplicate-detection cascade.
type DocumentStatus int

const (
	// StatusPending means the document was ingested but no tier has run yet.
	StatusPending DocumentStatus = iota + 1
	// StatusTier0Checked means the filename tier has been evaluated.
	StatusTier0Checked
	// StatusTier1Checked means the extracted-text tier has been evaluated.
	StatusTier1Checked
	// StatusTier2Checked means the semantic tier has been evaluated.
	StatusTier2Checked
	// StatusAccepted is terminal: the document is unique and scored.
	StatusAccepted
	// StatusDuplicateOf is terminal: the document duplicates an earlier one.
	StatusDuplicateOf
	// StatusNeedsReview is terminal: a human must resolve the outcome.
	StatusNeedsReview
	// StatusFailed is terminal: the submission could not be processed at all.
	StatusFailed
)

// String returns the lowercase wire name of the status.
func (s DocumentStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusTier0Checked:
		return "tier0_checked"
	case StatusTier1Checked:
		return "tier1_checked"
	case StatusTier2Checked:
		return "tier2_checked"
	case StatusAccepted:
		return "accepted"
	case StatusDuplicateOf:
		return "duplicate_of"
	case StatusNeedsReview:
		return "needs_review"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether the status is a terminal pipeline outcome.
func (s DocumentStatus) Terminal() bool {
	switch s {
	case StatusAccepted, StatusDuplicateOf, StatusNeedsReview, StatusFailed:
		return true
	}
	return false
}

// Tier identifies one stage of the escalating duplicate-matching cascade.
// Tiers are ordered by evaluation cost.
type Tier int

const (
	// TierHash is the exact content-hash pre-check.
	TierHash Tier = iota
	// TierFilename is the fuzzy normalized-filename comparison.
	TierFilename
	// TierText is the token-overlap comparison of extracted text.
	TierText
	// TierSemantic is the embedding nearest-neighbor comparison.
	TierSemantic
)

// String returns a short name for the tier.
func (t Tier) String() string {
	switch t {
	case TierHash:
		return "hash"
	case TierFilename:
		return "filename"
	case TierText:
		return "text"
	case TierSemantic:
		return "semantic"
	}
	return "unknown"
}

// MatchDecision is the outcome of evaluating one tier for one document.
type MatchDecision int

const (
	// DecisionMatch means the best candidate met the tier threshold.
	DecisionMatch MatchDecision = iota + 1
	// DecisionNoMatch means no candidate met the tier threshold.
	DecisionNoMatch
	// DecisionAmbiguous means two candidates were too close to auto-resolve.
	DecisionAmbiguous
	// DecisionFailed means the tier could not be evaluated (dependency down).
	DecisionFailed
)

// String returns the lowercase wire name of the decision.
func (d MatchDecision) String() string {
	switch d {
	case DecisionMatch:
		return "match"
	case DecisionNoMatch:
		return "no_match"
	case DecisionAmbiguous:
		return "ambiguous"
	case DecisionFailed:
		return "failed"
	}
	return "unknown"
}

// SourceRef records one origin of a submission. The same physical document
// may arrive from several sources (mobile capture, bulk scan, cloud sync);
// every arrival is kept for audit.
type SourceRef struct {
	Id      string // UUID assigned at submission time
	Origin  string // e.g. "mobile", "bulk_scan", "cloud_sync"
	Caption string // optional caption supplied by the submitter
}

// Document represents one ingested case document and its fingerprints.
type Document struct {
	Id             ID
	ContentHash    string // hex BLAKE2b-256 of the raw bytes, unique among accepted documents
	Filename       string
	NormalizedName string     // filename fingerprint used by the filename tier
	Text           string     // extracted text; empty until extraction runs
	DocDate        *time.Time // date the document refers to; nil if never extracted
	Category       string     // detected document category; empty until classified
	Vector         []float32  // embedding of the truncated text (populated by the semantic tier)
	Status         DocumentStatus
	Sources        []SourceRef
	IngestedAt     time.Time
	UpdatedAt      time.Time
}

// TextExtracted reports whether extraction has produced text for the document.
func (d *Document) TextExtracted() bool {
	return d.Text != ""
}

// DuplicateEdge is one audit row recording how a tier compared a candidate
// document against the best known match. One edge is appended per tier
// actually evaluated, including no-match and failed evaluations; an
// ambiguous tier appends one edge per tied candidate.
type DuplicateEdge struct {
	CandidateId ID
	MatchedId   ID // 0 when the tier found no candidate at all
	Tier        Tier
	Similarity  float32 // 0..1
	Decision    MatchDecision
	RecordedAt  time.Time
}

// ScoreRecord holds the four scoring dimensions for an accepted document.
// Exactly one record exists per accepted document.
type ScoreRecord struct {
	DocumentId ID
	Micro      int // 0..999, entity-level weight sum
	Macro      int // 0..999, document-category base weight
	Legal      int // 0..999, legal-element bonuses
	Relevancy  int // 0..999, rounded mean of the other three
	ComputedAt time.Time
}

// ClaimDefinition is a tracked factual assertion checked against
// accumulated evidence.
type ClaimDefinition struct {
	Id                   ID
	Text                 string
	ClaimType            string
	DateFrom             time.Time
	DateTo               time.Time
	Keywords             []string
	ExpectedEvidenceType string
	Weight               int
	InsertedAt           time.Time
}

// Tuple returns a string representation of the claim used for generating
// deterministic IDs.
func (c *ClaimDefinition) Tuple() string {
	return "(" + c.ClaimType + "," + c.Text + ")"
}

// CorrelationRecord scores one accepted document against one claim.
type CorrelationRecord struct {
	DocumentId         ID
	ClaimId            ID
	ContradictionScore int // 0..999
	KeywordMatches     int
	DateRelevance      int // 0..100
	TypeMatchBonus     int // 0 or 50
	RecordedAt         time.Time
}

// MatchCandidate is one candidate document produced by a tier matcher.
type MatchCandidate struct {
	DocumentId ID
	Similarity float32
}

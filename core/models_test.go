package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestHashContent(t *testing.T) {
	data := []byte("%PDF-1.4 some document bytes")

	h1 := HashContent(data)
	h2 := HashContent(data)

	if h1 != h2 {
		t.Errorf("HashContent() produced different hashes for identical bytes: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("HashContent() expected 64 hex chars, got %d", len(h1))
	}

	other := HashContent([]byte("%PDF-1.4 different document bytes"))
	if h1 == other {
		t.Error("HashContent() produced same hash for different bytes")
	}
}

func TestClaimDefinition_Tuple(t *testing.T) {
	tests := []struct {
		name  string
		claim ClaimDefinition
		want  string
	}{
		{
			name: "basic claim",
			claim: ClaimDefinition{
				Text:      "never traveled abroad",
				ClaimType: "statement",
			},
			want: "(statement,never traveled abroad)",
		},
		{
			name: "claim with punctuation",
			claim: ClaimDefinition{
				Text:      "was at home on 2024-05-01",
				ClaimType: "alibi",
			},
			want: "(alibi,was at home on 2024-05-01)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claim.Tuple(); got != tt.want {
				t.Errorf("Tuple() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentStatus_Terminal(t *testing.T) {
	terminal := []DocumentStatus{StatusAccepted, StatusDuplicateOf, StatusNeedsReview, StatusFailed}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	nonTerminal := []DocumentStatus{StatusPending, StatusTier0Checked, StatusTier1Checked, StatusTier2Checked}
	for _, s := range nonTerminal {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestDocumentStatus_String(t *testing.T) {
	tests := []struct {
		status DocumentStatus
		want   string
	}{
		{StatusPending, "pending"},
		{StatusTier0Checked, "tier0_checked"},
		{StatusTier1Checked, "tier1_checked"},
		{StatusTier2Checked, "tier2_checked"},
		{StatusAccepted, "accepted"},
		{StatusDuplicateOf, "duplicate_of"},
		{StatusNeedsReview, "needs_review"},
		{StatusFailed, "failed"},
		{DocumentStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("DocumentStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestTier_String(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierHash, "hash"},
		{TierFilename, "filename"},
		{TierText, "text"},
		{TierSemantic, "semantic"},
	}

	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Id:          1,
				ContentHash: "abc123",
				Filename:    "Motion.pdf",
				Status:      StatusPending,
				IngestedAt:  validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid document without extracted text",
			doc: &Document{
				Id:          2,
				ContentHash: "def456",
				Filename:    "Exhibit_A.pdf",
				Status:      StatusTier0Checked,
				IngestedAt:  validTime,
				Text:        "",
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "missing content hash",
			doc: &Document{
				Filename:   "Motion.pdf",
				Status:     StatusPending,
				IngestedAt: validTime,
			},
			wantErr: ErrEmptyContentHash,
		},
		{
			name: "missing filename",
			doc: &Document{
				ContentHash: "abc123",
				Status:      StatusPending,
				IngestedAt:  validTime,
			},
			wantErr: ErrEmptyFilename,
		},
		{
			name: "invalid status",
			doc: &Document{
				ContentHash: "abc123",
				Filename:    "Motion.pdf",
				Status:      DocumentStatus(42),
				IngestedAt:  validTime,
			},
			wantErr: ErrInvalidStatus,
		},
		{
			name: "future ingestion timestamp",
			doc: &Document{
				ContentHash: "abc123",
				Filename:    "Motion.pdf",
				Status:      StatusPending,
				IngestedAt:  futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateClaim(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 8, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		claim   *ClaimDefinition
		wantErr error
	}{
		{
			name: "valid claim",
			claim: &ClaimDefinition{
				Text:      "never traveled abroad",
				ClaimType: "statement",
				DateFrom:  from,
				DateTo:    to,
				Keywords:  []string{"jamaica", "travel"},
			},
			wantErr: nil,
		},
		{
			name: "valid claim without date range",
			claim: &ClaimDefinition{
				Text:      "no contact with witness",
				ClaimType: "statement",
			},
			wantErr: nil,
		},
		{
			name:    "nil claim",
			claim:   nil,
			wantErr: ErrInvalidClaim,
		},
		{
			name: "missing text",
			claim: &ClaimDefinition{
				ClaimType: "statement",
			},
			wantErr: ErrEmptyClaimText,
		},
		{
			name: "missing type",
			claim: &ClaimDefinition{
				Text: "never traveled abroad",
			},
			wantErr: ErrEmptyClaimType,
		},
		{
			name: "inverted date range",
			claim: &ClaimDefinition{
				Text:      "never traveled abroad",
				ClaimType: "statement",
				DateFrom:  to,
				DateTo:    from,
			},
			wantErr: ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaim(tt.claim)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateClaim() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateClaim() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateScoreRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  ScoreRecord
		wantErr bool
	}{
		{"all zero", ScoreRecord{}, false},
		{"all max", ScoreRecord{Micro: 999, Macro: 999, Legal: 999, Relevancy: 999}, false},
		{"micro too large", ScoreRecord{Micro: 1000}, true},
		{"negative legal", ScoreRecord{Legal: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScoreRecord(&tt.record)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScoreRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

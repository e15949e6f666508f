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

package core

import (
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - ContentHash must not be empty
//   - Filename must not be empty
//   - Status must be a known value
//   - IngestedAt must not be in the future
//
// NOT validated (populated by the pipeline):
//   - Text (empty until extraction runs)
//   - Vector (empty until the semantic tier runs)
//   - Category (empty until classification runs)
//   - ID (0 is valid from database sequences)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.ContentHash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContentHash)
	}

	if doc.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyFilename)
	}

	if err := ValidateStatus(doc.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if !doc.IngestedAt.IsZero() && !IsValidTimestamp(doc.IngestedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateClaim validates a ClaimDefinition according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - ClaimType must not be empty
//   - DateTo must not precede DateFrom
func ValidateClaim(claim *ClaimDefinition) error {
	if claim == nil {
		return fmt.Errorf("%w: claim is nil", ErrInvalidClaim)
	}

	if claim.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClaim, ErrEmptyClaimText)
	}

	if claim.ClaimType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClaim, ErrEmptyClaimType)
	}

	if !claim.DateFrom.IsZero() && !claim.DateTo.IsZero() && claim.DateTo.Before(claim.DateFrom) {
		return fmt.Errorf("%w: %w", ErrInvalidClaim, ErrInvalidDateRange)
	}

	return nil
}

// ValidateStatus validates that a DocumentStatus has a valid value.
func ValidateStatus(status DocumentStatus) error {
	if status < StatusPending || status > StatusFailed {
		return fmt.Errorf("%w: value %d", ErrInvalidStatus, status)
	}
	return nil
}

// ValidateScoreRecord checks that every score dimension is within 0..999.
func ValidateScoreRecord(record *ScoreRecord) error {
	for _, v := range []int{record.Micro, record.Macro, record.Legal, record.Relevancy} {
		if v < 0 || v > 999 {
			return fmt.Errorf("%w: value %d", ErrScoreOutOfRange, v)
		}
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}

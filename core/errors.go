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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidClaim indicates a ClaimDefinition failed validation.
	ErrInvalidClaim = errors.New("invalid claim definition")

	// ErrEmptyContentHash indicates the ContentHash field is empty.
	ErrEmptyContentHash = errors.New("content hash cannot be empty")

	// ErrEmptyFilename indicates the Filename field is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrInvalidStatus indicates an invalid DocumentStatus value.
	ErrInvalidStatus = errors.New("invalid document status")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyClaimText indicates the claim Text field is empty.
	ErrEmptyClaimText = errors.New("claim text cannot be empty")

	// ErrEmptyClaimType indicates the claim ClaimType field is empty.
	ErrEmptyClaimType = errors.New("claim type cannot be empty")

	// ErrInvalidDateRange indicates a claim date range ends before it starts.
	ErrInvalidDateRange = errors.New("claim date range ends before it starts")

	// ErrScoreOutOfRange indicates a score component is outside 0..999.
	ErrScoreOutOfRange = errors.New("score out of range")
)

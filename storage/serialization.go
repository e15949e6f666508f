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

package storage

import (
	"github.com/poiesic/casefile/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalDuplicateEdge serializes a DuplicateEdge to bytes.
func MarshalDuplicateEdge(edge *core.DuplicateEdge) []byte {
	buf := make([]byte, core.DuplicateEdgeMUS.Size(*edge))
	core.DuplicateEdgeMUS.Marshal(*edge, buf)
	return buf
}

// UnmarshalDuplicateEdge deserializes a DuplicateEdge from bytes.
func UnmarshalDuplicateEdge(data []byte) (*core.DuplicateEdge, error) {
	edge, _, err := core.DuplicateEdgeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// MarshalScoreRecord serializes a ScoreRecord to bytes.
func MarshalScoreRecord(record *core.ScoreRecord) []byte {
	buf := make([]byte, core.ScoreRecordMUS.Size(*record))
	core.ScoreRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalScoreRecord deserializes a ScoreRecord from bytes.
func UnmarshalScoreRecord(data []byte) (*core.ScoreRecord, error) {
	record, _, err := core.ScoreRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalClaim serializes a ClaimDefinition to bytes.
func MarshalClaim(claim *core.ClaimDefinition) []byte {
	buf := make([]byte, core.ClaimDefinitionMUS.Size(*claim))
	core.ClaimDefinitionMUS.Marshal(*claim, buf)
	return buf
}

// UnmarshalClaim deserializes a ClaimDefinition from bytes.
func UnmarshalClaim(data []byte) (*core.ClaimDefinition, error) {
	claim, _, err := core.ClaimDefinitionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// MarshalCorrelation serializes a CorrelationRecord to bytes.
func MarshalCorrelation(record *core.CorrelationRecord) []byte {
	buf := make([]byte, core.CorrelationRecordMUS.Size(*record))
	core.CorrelationRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalCorrelation deserializes a CorrelationRecord from bytes.
func UnmarshalCorrelation(data []byte) (*core.CorrelationRecord, error) {
	record, _, err := core.CorrelationRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

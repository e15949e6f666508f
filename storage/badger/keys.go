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

package badger

import (
	"fmt"

	"github.com/poiesic/casefile/core"
)

// Key layout. Records carry the full payload; index keys carry only the
// record ID (or nothing) in their value.
const (
	documentPrefix       = "docrec:"
	documentIDSeq        = "docseq"
	documentHashPrefix   = "dochash:"
	documentStatusPrefix = "docstat:"

	edgePrefix   = "dupedge:"
	edgeIDSeq    = "edgeseq"
	scorePrefix  = "score:"
	claimPrefix  = "clmrec:"
	corrPrefix   = "correlc:"
	corrDocIndex = "correld:"
	corrIDSeq    = "corrseq"
)

func documentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", documentPrefix, id))
}

func documentHashKey(contentHash string) []byte {
	return []byte(documentHashPrefix + contentHash)
}

func documentStatusKey(status core.DocumentStatus, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%s:%d", documentStatusPrefix, status, id))
}

func documentStatusScanPrefix(status core.DocumentStatus) []byte {
	return []byte(fmt.Sprintf("%s%s:", documentStatusPrefix, status))
}

// edgeKey indexes duplicate edges by the candidate document so an
// ingestion's full tier trail reads back in one prefix scan.
func edgeKey(candidateId core.ID, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%d:%020d", edgePrefix, candidateId, seq))
}

func edgeScanPrefix(candidateId core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d:", edgePrefix, candidateId))
}

func scoreKey(docId core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", scorePrefix, docId))
}

func claimKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", claimPrefix, id))
}

func correlationClaimKey(claimId core.ID, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%d:%020d", corrPrefix, claimId, seq))
}

func correlationClaimScanPrefix(claimId core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d:", corrPrefix, claimId))
}

func correlationDocKey(docId core.ID, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%d:%020d", corrDocIndex, docId, seq))
}

func correlationDocScanPrefix(docId core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d:", corrDocIndex, docId))
}

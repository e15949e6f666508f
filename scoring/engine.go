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

package scoring

import (
	"math"
	"time"

	"github.com/poiesic/casefile/ai"
	"github.com/poiesic/casefile/core"
)

// maxDimension is the inclusive ceiling of every scoring dimension.
const maxDimension = 999

// Entity weights for the micro dimension. Direct evidence outweighs
// everything else a document can contain.
var entityWeights = map[ai.EntityCategory]int{
	ai.EntityNamedParty:         100,
	ai.EntityCriticalDate:       75,
	ai.EntityStatutoryReference: 50,
	ai.EntityDirectEvidence:     150,
	ai.EntityExpertOpinion:      125,
}

// Category base weights for the macro dimension. An unknown category
// contributes nothing.
var categoryWeights = map[ai.DocumentCategory]int{
	ai.CategoryCourtOrder:           200,
	ai.CategoryMedicalReport:        175,
	ai.CategoryLawEnforcementRecord: 150,
	ai.CategoryTranscript:           125,
	ai.CategoryCorrespondence:       50,
}

// Legal dimension bonuses.
const (
	elementMatchWeight        = 100
	admissibilityBonus        = 75
	proceduralComplianceBonus = 50
	strategicValueBonus       = 125
)

// Score computes the four scoring dimensions for a classified document.
// The computation is pure: the same classification always yields the same
// record, with no AI call and no randomness.
func Score(docId core.ID, classification *ai.Classification) *core.ScoreRecord {
	micro := 0
	for category, count := range classification.Entities {
		weight, known := entityWeights[category]
		if !known || count <= 0 {
			continue
		}
		micro += weight * count
	}

	macro := categoryWeights[classification.Category]

	legal := classification.ElementMatches * elementMatchWeight
	if classification.Admissibility {
		legal += admissibilityBonus
	}
	if classification.ProceduralCompliance {
		legal += proceduralComplianceBonus
	}
	if classification.StrategicValue {
		legal += strategicValueBonus
	}

	micro = clampDimension(micro)
	macro = clampDimension(macro)
	legal = clampDimension(legal)

	relevancy := clampDimension(int(math.Round(float64(micro+macro+legal) / 3)))

	return &core.ScoreRecord{
		DocumentId: docId,
		Micro:      micro,
		Macro:      macro,
		Legal:      legal,
		Relevancy:  relevancy,
		ComputedAt: time.Now(),
	}
}

func clampDimension(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxDimension {
		return maxDimension
	}
	return v
}

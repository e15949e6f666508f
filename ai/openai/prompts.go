package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/casefile/ai"
)

const classificationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "document_category": {
      "type": "string"
    },
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "category": {
            "type": "string"
          },
          "count": {
            "type": "integer",
            "minimum": 1
          }
        },
        "required": ["category", "count"],
        "additionalProperties": false
      }
    },
    "element_matches": {
      "type": "integer",
      "minimum": 0
    },
    "admissibility": {
      "type": "boolean"
    },
    "procedural_compliance": {
      "type": "boolean"
    },
    "strategic_value": {
      "type": "boolean"
    }
  },
  "required": ["document_category", "entities"],
  "additionalProperties": false
}`

const classificationPromptTemplate = `Classify the given legal case document and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- document_category must be exactly one of: %s. Use "unknown" when none applies.
- Each entities item counts occurrences of one category; category must be exactly one of: %s.
- element_matches is the number of legal elements of a pending motion or claim the document supports.
- admissibility is true only when the document itself satisfies an admissibility factor.
- procedural_compliance is true only when the document satisfies a procedural requirement.
- strategic_value is true only when the document has clear strategic value.
- Count only entities explicitly present in the text. Do not hallucinate.
- If no entities can be identified, return "entities": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildClassifierPrompt assembles the system prompt for document classification.
func buildClassifierPrompt() string {
	docCategories := make([]string, len(ai.DocumentCategories))
	for i, c := range ai.DocumentCategories {
		docCategories[i] = string(c)
	}
	entityCategories := make([]string, len(ai.EntityCategories))
	for i, c := range ai.EntityCategories {
		entityCategories[i] = string(c)
	}
	return fmt.Sprintf(classificationPromptTemplate,
		classificationResponseSchema,
		strings.Join(docCategories, ", "),
		strings.Join(entityCategories, ", "))
}

const extractionPrompt = `Transcribe the textual content of the attached document exactly as written.
Return plain UTF-8 text only, preserving reading order. Do not summarize, translate, or annotate.
If parts of the document are illegible, transcribe what is legible and skip the rest.`

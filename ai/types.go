package ai

// EntityCategory classifies an entity detected in document text.
type EntityCategory string

const (
	EntityNamedParty         EntityCategory = "named_party"
	EntityCriticalDate       EntityCategory = "critical_date"
	EntityStatutoryReference EntityCategory = "statutory_reference"
	EntityDirectEvidence     EntityCategory = "direct_evidence"
	EntityExpertOpinion      EntityCategory = "expert_opinion"
)

// EntityCategories lists the valid entity categories a classifier may
// return. Unknown categories are dropped during parsing.
var EntityCategories = []EntityCategory{
	EntityNamedParty,
	EntityCriticalDate,
	EntityStatutoryReference,
	EntityDirectEvidence,
	EntityExpertOpinion,
}

// DocumentCategory classifies a document by its overall type.
type DocumentCategory string

const (
	CategoryCourtOrder           DocumentCategory = "court_order"
	CategoryMedicalReport        DocumentCategory = "medical_report"
	CategoryLawEnforcementRecord DocumentCategory = "law_enforcement_record"
	CategoryTranscript           DocumentCategory = "transcript"
	CategoryCorrespondence       DocumentCategory = "correspondence"
	CategoryUnknown              DocumentCategory = "unknown"
)

// DocumentCategories lists the valid document categories a classifier may
// return.
var DocumentCategories = []DocumentCategory{
	CategoryCourtOrder,
	CategoryMedicalReport,
	CategoryLawEnforcementRecord,
	CategoryTranscript,
	CategoryCorrespondence,
	CategoryUnknown,
}

// Classification is the result of classifying a document's text.
// All fields may be zero-valued; missing data contributes zero to the
// downstream scores rather than producing an error.
type Classification struct {
	// Category is the detected document category.
	Category DocumentCategory

	// Entities maps each detected entity category to its occurrence count.
	Entities map[EntityCategory]int

	// ElementMatches counts legal elements of pending motions or claims
	// that the document supports.
	ElementMatches int

	// Admissibility indicates the document satisfies an admissibility factor.
	Admissibility bool

	// ProceduralCompliance indicates the document satisfies a procedural
	// requirement.
	ProceduralCompliance bool

	// StrategicValue indicates the document has strategic value for the
	// pending motion set.
	StrategicValue bool
}

// ValidDocumentCategory reports whether category is one of the known
// document categories.
func ValidDocumentCategory(category DocumentCategory) bool {
	for _, c := range DocumentCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidEntityCategory reports whether category is one of the known entity
// categories.
func ValidEntityCategory(category EntityCategory) bool {
	for _, c := range EntityCategories {
		if c == category {
			return true
		}
	}
	return false
}

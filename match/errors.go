package match

import "errors"

var (
	// ErrTierUnavailable indicates a tier's external dependency (extraction
	// or embedding service) could not be reached.
	ErrTierUnavailable = errors.New("tier dependency unavailable")

	// ErrNoText indicates the text tier was asked to evaluate a document
	// whose extraction never produced any text.
	ErrNoText = errors.New("document has no extracted text")
)

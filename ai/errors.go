package ai

import "errors"

var (
	// ErrEmptyExtraction indicates the extraction service returned no text
	// at all. Partial or garbled text is not an error.
	ErrEmptyExtraction = errors.New("extraction produced no text")
)

package pipeline

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrClaimRepositoryRequired is returned when a claim repository is not provided.
	ErrClaimRepositoryRequired = errors.New("claim repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrInvalidThreshold is returned when a tier threshold override lies
	// outside (0, 1].
	ErrInvalidThreshold = errors.New("threshold must be in (0, 1]")

	// ErrEmptySubmission is returned when a submission carries no content.
	ErrEmptySubmission = errors.New("submission has no content")

	// ErrMissingFilename is returned when a submission carries no filename.
	ErrMissingFilename = errors.New("submission has no filename")

	// ErrReleased is returned when submitting to a released pipeline.
	ErrReleased = errors.New("pipeline released")
)

// Package pipeline orchestrates document ingestion: the escalating
// duplicate-detection cascade, acceptance, scoring, and claim correlation.
//
// Tiers run in strict cost order (content hash, filename, extracted text,
// embedding) and stop at the first confident match. Runs for distinct
// content execute concurrently on a worker pool; runs sharing a content
// hash are serialized so the same bytes are never double-accepted.
package pipeline

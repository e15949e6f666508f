// Package storage defines the persistence interfaces for the document
// registry and claim store.
//
// The registry is the single authoritative store touched by all ingestion
// sources. It is deliberately narrow: documents are added and updated
// through one repository, while duplicate edges, score records, and
// correlation records are append-only so the audit trail stays consistent
// under concurrent writers.
//
// The storage/badger sub-package provides the BadgerDB implementation.
// Serialization uses hand-maintained MUS serializers from the core package.
package storage

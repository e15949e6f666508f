// Package badger implements the storage repositories on top of BadgerDB.
//
// A single Backend owns the database handle; DocumentStore and ClaimStore
// share it. Records are serialized with the binary codecs from the parent
// storage package. Secondary indexes (content hash, status, claim and
// document correlation scans) are maintained as prefix-scannable keys
// alongside the records.
package badger

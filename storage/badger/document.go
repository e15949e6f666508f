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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage"
)

// DocumentStore implements storage.DocumentRepository backed by BadgerDB.
type DocumentStore struct {
	backend *Backend
	docSeq  *badger.Sequence
	edgeSeq *badger.Sequence
	corrSeq *badger.Sequence
	logger  *slog.Logger
}

var _ storage.DocumentRepository = (*DocumentStore)(nil)

// NewDocumentStore creates a document repository over an open backend.
func NewDocumentStore(backend *Backend) (*DocumentStore, error) {
	docSeq, err := backend.GetSequence(documentIDSeq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
	}
	edgeSeq, err := backend.GetSequence(edgeIDSeq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
	}
	corrSeq, err := backend.GetSequence(corrIDSeq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
	}
	return &DocumentStore{
		backend: backend,
		docSeq:  docSeq,
		edgeSeq: edgeSeq,
		corrSeq: corrSeq,
		logger:  slog.Default(),
	}, nil
}

func (s *DocumentStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// Close releases the ID sequences. The shared backend is closed separately.
func (s *DocumentStore) Close() error {
	var errs []error
	for _, seq := range []*badger.Sequence{s.docSeq, s.edgeSeq, s.corrSeq} {
		if err := seq.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddDocument persists a new document. A zero ID is replaced with the next
// sequence value. Timestamps are stamped here so callers never have to.
func (s *DocumentStore) AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error) {
	if doc.Id == 0 {
		next, err := s.docSeq.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		// Sequences start at zero; IDs start at one.
		doc.Id = core.ID(next + 1)
	}
	now := time.Now()
	if doc.IngestedAt.IsZero() {
		doc.IngestedAt = now
	}
	doc.UpdatedAt = now

	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := s.putDocument(tx, doc, core.DocumentStatus(0)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateDocument rewrites an existing document record and keeps the status
// and content-hash indexes consistent with the new state.
func (s *DocumentStore) UpdateDocument(ctx context.Context, doc *core.Document) (*core.Document, error) {
	doc.UpdatedAt = time.Now()
	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prev, err := s.getDocumentTx(tx, doc.Id)
		if err != nil {
			return err
		}
		if err := s.putDocument(tx, doc, prev.Status); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// putDocument writes the record and maintains the secondary indexes.
// prevStatus is empty for inserts.
func (s *DocumentStore) putDocument(tx *badger.Txn, doc *core.Document, prevStatus core.DocumentStatus) error {
	data := storage.MarshalDocument(doc)
	if err := tx.Set(documentKey(doc.Id), data); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
	}

	if prevStatus != 0 && prevStatus != doc.Status {
		if err := tx.Delete(documentStatusKey(prevStatus, doc.Id)); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
	}
	if err := tx.Set(documentStatusKey(doc.Status, doc.Id), nil); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
	}

	// Only accepted documents claim their content hash. The hash index is
	// what makes re-ingesting identical bytes a pure lookup.
	if doc.Status == core.StatusAccepted {
		idData := storage.MarshalID(doc.Id)
		if err := tx.Set(documentHashKey(doc.ContentHash), idData); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
	}
	return nil
}

func (s *DocumentStore) getDocumentTx(tx *badger.Txn, id core.ID) (*core.Document, error) {
	item, err := tx.Get(documentKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: document %d", storage.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
	}
	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocument(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentStore) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var doc *core.Document
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		doc, err = s.getDocumentTx(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentStore) GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error) {
	docs := make([]*core.Document, 0, len(ids))
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			doc, err := s.getDocumentTx(tx, id)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					continue
				}
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocumentByContentHash resolves an accepted document for the given
// content hash. Pending and rejected documents never appear here.
func (s *DocumentStore) GetDocumentByContentHash(ctx context.Context, contentHash string) (*core.Document, error) {
	var doc *core.Document
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(documentHashKey(contentHash))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: content hash %s", storage.ErrNotFound, contentHash)
			}
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		var id core.ID
		err = item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}
		doc, err = s.getDocumentTx(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentStore) GetDocumentsByStatus(ctx context.Context, status core.DocumentStatus) ([]*core.Document, error) {
	if err := core.ValidateStatus(status); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidQuery, err)
	}
	var ids []core.ID
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		prefix := documentStatusScanPrefix(status)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			var id core.ID
			if _, err := fmt.Sscanf(string(key[len(prefix):]), "%d", &id); err != nil {
				return fmt.Errorf("%w: malformed status key %q", storage.ErrInvalidQuery, key)
			}
			ids = append(ids, id)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return s.GetDocuments(ctx, ids...)
}

func (s *DocumentStore) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.MatchCandidate, error) {
	return s.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// AppendDuplicateEdges records the tier trail of one ingestion attempt.
// Edges are append-only; nothing ever rewrites them.
func (s *DocumentStore) AppendDuplicateEdges(ctx context.Context, edges ...*core.DuplicateEdge) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, edge := range edges {
			if edge.RecordedAt.IsZero() {
				edge.RecordedAt = time.Now()
			}
			seq, err := s.edgeSeq.Next()
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
			data := storage.MarshalDuplicateEdge(edge)
			if err := tx.Set(edgeKey(edge.CandidateId, seq), data); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
		}
		return tx.Commit()
	}, true)
}

func (s *DocumentStore) GetDuplicateEdges(ctx context.Context, candidateId core.ID) ([]*core.DuplicateEdge, error) {
	var edges []*core.DuplicateEdge
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = edgeScanPrefix(candidateId)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				edge, err := storage.UnmarshalDuplicateEdge(val)
				if err != nil {
					return err
				}
				edges = append(edges, edge)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// AppendScoreRecord stores the score produced for an accepted document.
// A document is scored exactly once; a second append is a duplicate key.
func (s *DocumentStore) AppendScoreRecord(ctx context.Context, record *core.ScoreRecord) error {
	if err := core.ValidateScoreRecord(record); err != nil {
		return err
	}
	if record.ComputedAt.IsZero() {
		record.ComputedAt = time.Now()
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := scoreKey(record.DocumentId)
		_, err := tx.Get(key)
		if err == nil {
			return fmt.Errorf("%w: score for document %d", storage.ErrDuplicateKey, record.DocumentId)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		data := storage.MarshalScoreRecord(record)
		if err := tx.Set(key, data); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		return tx.Commit()
	}, true)
}

func (s *DocumentStore) GetScoreRecord(ctx context.Context, docId core.ID) (*core.ScoreRecord, error) {
	var record *core.ScoreRecord
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(scoreKey(docId))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: score for document %d", storage.ErrNotFound, docId)
			}
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		return item.Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalScoreRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// AppendCorrelations stores claim-document correlation records, indexed both
// by claim and by document so either side reads back in one scan.
func (s *DocumentStore) AppendCorrelations(ctx context.Context, records ...*core.CorrelationRecord) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.RecordedAt.IsZero() {
				record.RecordedAt = time.Now()
			}
			seq, err := s.corrSeq.Next()
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
			data := storage.MarshalCorrelation(record)
			if err := tx.Set(correlationClaimKey(record.ClaimId, seq), data); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
			if err := tx.Set(correlationDocKey(record.DocumentId, seq), data); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
		}
		return tx.Commit()
	}, true)
}

func (s *DocumentStore) GetCorrelationsByClaim(ctx context.Context, claimId core.ID) ([]*core.CorrelationRecord, error) {
	return s.scanCorrelations(correlationClaimScanPrefix(claimId))
}

func (s *DocumentStore) GetCorrelationsByDocument(ctx context.Context, docId core.ID) ([]*core.CorrelationRecord, error) {
	return s.scanCorrelations(correlationDocScanPrefix(docId))
}

func (s *DocumentStore) scanCorrelations(prefix []byte) ([]*core.CorrelationRecord, error) {
	var records []*core.CorrelationRecord
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalCorrelation(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

package badger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/casefile/core"
	"github.com/poiesic/casefile/storage"
)

// ClaimStore implements storage.ClaimRepository backed by BadgerDB.
type ClaimStore struct {
	backend *Backend
}

var _ storage.ClaimRepository = (*ClaimStore)(nil)

// NewClaimStore creates a claim repository over an open backend.
func NewClaimStore(backend *Backend) *ClaimStore {
	return &ClaimStore{backend: backend}
}

func (s *ClaimStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// Close is a no-op; the shared backend is closed separately.
func (s *ClaimStore) Close() error {
	return nil
}

// AddClaims persists claim definitions. IDs derive from the claim tuple, so
// registering the same claim twice lands on the same record.
func (s *ClaimStore) AddClaims(ctx context.Context, claims ...*core.ClaimDefinition) ([]*core.ClaimDefinition, error) {
	now := time.Now()
	for _, claim := range claims {
		if err := core.ValidateClaim(claim); err != nil {
			return nil, err
		}
		if claim.Id == 0 {
			claim.Id = core.IDFromContent(claim.Tuple())
		}
		if claim.InsertedAt.IsZero() {
			claim.InsertedAt = now
		}
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, claim := range claims {
			data := storage.MarshalClaim(claim)
			if err := tx.Set(claimKey(claim.Id), data); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *ClaimStore) GetClaim(ctx context.Context, id core.ID) (*core.ClaimDefinition, error) {
	var claim *core.ClaimDefinition
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(claimKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: claim %d", storage.ErrNotFound, id)
			}
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		return item.Value(func(val []byte) error {
			var err error
			claim, err = storage.UnmarshalClaim(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *ClaimStore) ListClaims(ctx context.Context) ([]*core.ClaimDefinition, error) {
	var claims []*core.ClaimDefinition
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(claimPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				claim, err := storage.UnmarshalClaim(val)
				if err != nil {
					return err
				}
				claims = append(claims, claim)
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

	slices.SortFunc(claims, func(a, b *core.ClaimDefinition) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
	return claims, nil
}

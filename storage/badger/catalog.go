package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/quercia-labs/vecbase/core"
	"github.com/quercia-labs/vecbase/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (storage.CatalogRepository, error) {
	idSeq, err := backend.GetSequence(runIDSeq)
	if err != nil {
		return nil, err
	}

	return &CatalogRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *CatalogRepository) Close() error {
	return r.idSeq.Release()
}

// AddRun records a completed ingestion run.
func (r *CatalogRepository) AddRun(ctx context.Context, run *core.IngestionRun) (*core.IngestionRun, error) {
	if err := core.ValidateIngestionRun(run); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		run.Id = core.ID(nextID)

		key := makeRunKey(run.Id)
		value := storage.MarshalIngestionRun(run)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// GetRun retrieves a single run by ID.
func (r *CatalogRepository) GetRun(ctx context.Context, id core.ID) (*core.IngestionRun, error) {
	var run *core.IngestionRun

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			run, err = storage.UnmarshalIngestionRun(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// GetRuns retrieves all recorded runs in ID order.
func (r *CatalogRepository) GetRuns(ctx context.Context) ([]*core.IngestionRun, error) {
	var runs []*core.IngestionRun

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				run, err := storage.UnmarshalIngestionRun(val)
				if err != nil {
					return err
				}
				runs = append(runs, run)
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

	return runs, nil
}

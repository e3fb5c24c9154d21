package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
)

// salePrefix namespaces sale record keys inside the shared store
const salePrefix = "sale:"

// BadgerSaleRepository implements the sale record repository interface using BadgerDB
type BadgerSaleRepository struct {
	db *badger.DB
}

// NewBadgerSaleRepository creates a new BadgerDB sale record repository
func NewBadgerSaleRepository(db *badger.DB) *BadgerSaleRepository {
	return &BadgerSaleRepository{db: db}
}

// Store saves a sale record and returns its ID
func (r *BadgerSaleRepository) Store(ctx context.Context, record *entity.SaleRecord) (string, error) {
	// Serialize record to JSON
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sale record: %w", err)
	}

	// Store in BadgerDB
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(salePrefix+record.ID), data)
	})

	if err != nil {
		return "", fmt.Errorf("failed to store sale record: %w", err)
	}

	return record.ID, nil
}

// FindByID retrieves a sale record by its unique identifier
func (r *BadgerSaleRepository) FindByID(ctx context.Context, id string) (*entity.SaleRecord, error) {
	var record entity.SaleRecord

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(salePrefix + id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", repository.ErrRecordNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sale record: %w", err)
	}

	return &record, nil
}

// Load retrieves every stored sale record by iterating the sale key prefix
func (r *BadgerSaleRepository) Load(ctx context.Context) ([]entity.SaleRecord, error) {
	var records []entity.SaleRecord

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(salePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var record entity.SaleRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return &repository.MalformedDataError{
						Source: "badger",
						Err:    fmt.Errorf("key %s: %w", item.Key(), err),
					}
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		var malformed *repository.MalformedDataError
		if errors.As(err, &malformed) {
			return nil, err
		}
		return nil, &repository.SourceUnavailableError{Source: "badger", Err: err}
	}

	return records, nil
}

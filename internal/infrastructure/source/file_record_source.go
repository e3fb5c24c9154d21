// Package source provides sale record sources backed by flat files.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DateLayout is the date format accepted in record files
const DateLayout = "2006-01-02"

// FileRecordSource reads sale records from a JSON file containing an
// array of {date, amount, currency} objects.
//
// A file that cannot be read yields a SourceUnavailableError. A file
// that can be read but does not decode cleanly yields a
// MalformedDataError; decoding fails fast on the first bad record
// rather than skipping it.
type FileRecordSource struct {
	path string
}

// NewFileRecordSource creates a source reading from the given path
func NewFileRecordSource(path string) *FileRecordSource {
	return &FileRecordSource{path: path}
}

// Path returns the file the source reads from
func (s *FileRecordSource) Path() string {
	return s.path
}

// Load reads and decodes every record in the file
func (s *FileRecordSource) Load(ctx context.Context) ([]entity.SaleRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &repository.SourceUnavailableError{Source: s.path, Err: err}
	}

	var raw []rawSaleRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &repository.MalformedDataError{Source: s.path, Err: err}
	}

	records := make([]entity.SaleRecord, 0, len(raw))
	for i, r := range raw {
		record, err := r.toEntity()
		if err != nil {
			return nil, &repository.MalformedDataError{
				Source: s.path,
				Err:    fmt.Errorf("record %d: %w", i, err),
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// rawSaleRecord uses pointer fields so absent keys can be told apart
// from zero values
type rawSaleRecord struct {
	Date     *string          `json:"date"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency"`
}

func (r rawSaleRecord) toEntity() (entity.SaleRecord, error) {
	if r.Date == nil {
		return entity.SaleRecord{}, errors.New("missing date")
	}
	if r.Amount == nil {
		return entity.SaleRecord{}, errors.New("missing amount")
	}
	if r.Currency == nil || *r.Currency == "" {
		return entity.SaleRecord{}, errors.New("missing currency")
	}
	if r.Amount.IsNegative() {
		return entity.SaleRecord{}, fmt.Errorf("negative amount %s", r.Amount)
	}

	date, err := time.Parse(DateLayout, *r.Date)
	if err != nil {
		return entity.SaleRecord{}, fmt.Errorf("parse date %q: %w", *r.Date, err)
	}

	return entity.SaleRecord{
		Date:     date,
		Amount:   *r.Amount,
		Currency: *r.Currency,
	}, nil
}

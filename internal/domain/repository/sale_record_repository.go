package repository

import (
	"context"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
)

// RecordSource defines the interface for reading sale records
type RecordSource interface {
	// Load retrieves every available sale record
	Load(ctx context.Context) ([]entity.SaleRecord, error)
}

// ReportSink defines the interface for publishing rendered reports
type ReportSink interface {
	// Write stores the report lines under the given destination key
	Write(ctx context.Context, destination string, lines []string) error
}

// SaleRecordRepository defines the interface for sale record storage
type SaleRecordRepository interface {
	RecordSource

	// Store saves a sale record and returns its ID
	Store(ctx context.Context, record *entity.SaleRecord) (string, error)

	// FindByID retrieves a sale record by its unique identifier
	FindByID(ctx context.Context, id string) (*entity.SaleRecord, error)
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService handles business logic for sale records
type SaleService struct {
	repo repository.SaleRecordRepository
}

// NewSaleService creates a new sale service
func NewSaleService(repo repository.SaleRecordRepository) *SaleService {
	return &SaleService{repo: repo}
}

// RecordSale creates and stores a new sale record
func (s *SaleService) RecordSale(ctx context.Context, date time.Time, amount decimal.Decimal, currency string) (string, error) {
	// Create sale record entity
	record := &entity.SaleRecord{
		ID:       uuid.New().String(),
		Date:     date,
		Amount:   amount,
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}

	// Validate
	if err := record.Validate(); err != nil {
		return "", err
	}

	// Store in repository
	return s.repo.Store(ctx, record)
}

// GetSale retrieves a sale record by ID
func (s *SaleService) GetSale(ctx context.Context, id string) (*entity.SaleRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// ListSales retrieves every stored sale record
func (s *SaleService) ListSales(ctx context.Context) ([]entity.SaleRecord, error) {
	return s.repo.Load(ctx)
}

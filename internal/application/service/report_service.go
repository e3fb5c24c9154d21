// Package service internal/application/service/report_service.go
package service

import (
	"context"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/middleware"
	"golang.org/x/sync/errgroup"
)

const monthsPerYear = 12

// ReportService builds monthly sales reports from a record source and
// publishes them to a report sink
type ReportService struct {
	source repository.RecordSource
	sink   repository.ReportSink
	rates  *entity.ExchangeRateTable
	logger logger.Logger
}

// NewReportService creates a new report service
func NewReportService(source repository.RecordSource, sink repository.ReportSink, rates *entity.ExchangeRateTable, log logger.Logger) *ReportService {
	if rates == nil {
		rates, _ = entity.NewExchangeRateTable("USD", nil)
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReportService{
		source: source,
		sink:   sink,
		rates:  rates,
		logger: log,
	}
}

// Rates returns the exchange rate table the service converts with
func (s *ReportService) Rates() *entity.ExchangeRateTable {
	return s.rates
}

// BuildMonthlyReport loads all records and aggregates the given month
// into a rendered report without publishing it.
//
// Source errors are returned to the caller exactly as the source
// produced them so that callers can inspect their concrete types.
func (s *ReportService) BuildMonthlyReport(ctx context.Context, year, month int) (*entity.ReportResult, error) {
	requestID := middleware.GetRequestID(ctx)

	s.logger.Debug("Building monthly report", map[string]interface{}{
		"request_id": requestID,
		"year":       year,
		"month":      month,
	})

	records, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load sale records", map[string]interface{}{
			"request_id": requestID,
			"year":       year,
			"month":      month,
			"error":      err.Error(),
		})
		return nil, err
	}

	result := Aggregate(records, year, month, s.rates)

	s.logger.Info("Monthly report built", map[string]interface{}{
		"request_id": requestID,
		"period":     result.Period.String(),
		"records":    len(records),
		"total":      result.Total.StringFixed(2),
		"currency":   result.BaseCurrency,
	})

	return result, nil
}

// PublishMonthlyReport builds the report for the given month and writes
// it to the sink. It returns the report and the destination key it was
// published under. Sink errors are returned unmodified.
func (s *ReportService) PublishMonthlyReport(ctx context.Context, year, month int) (*entity.ReportResult, string, error) {
	result, err := s.BuildMonthlyReport(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	destination := result.Period.DestinationKey()

	if err := s.sink.Write(ctx, destination, result.Lines); err != nil {
		s.logger.Error("Failed to publish monthly report", map[string]interface{}{
			"request_id":  middleware.GetRequestID(ctx),
			"destination": destination,
			"error":       err.Error(),
		})
		return nil, "", err
	}

	s.logger.Info("Monthly report published", map[string]interface{}{
		"request_id":  middleware.GetRequestID(ctx),
		"destination": destination,
		"total":       result.Total.StringFixed(2),
	})

	return result, destination, nil
}

// PublishYear builds and publishes a report for every month of the
// given year. Records are loaded once; the twelve reports are then
// aggregated and written concurrently. The first failure cancels the
// remaining writes and is returned to the caller.
func (s *ReportService) PublishYear(ctx context.Context, year int) ([]*entity.ReportResult, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load sale records", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"year":       year,
			"error":      err.Error(),
		})
		return nil, err
	}

	results := make([]*entity.ReportResult, monthsPerYear)

	g, ctx := errgroup.WithContext(ctx)
	for month := 1; month <= monthsPerYear; month++ {
		g.Go(func() error {
			result := Aggregate(records, year, month, s.rates)

			if err := s.sink.Write(ctx, result.Period.DestinationKey(), result.Lines); err != nil {
				return err
			}

			results[month-1] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Yearly reports published", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"year":       year,
		"records":    len(records),
	})

	return results, nil
}

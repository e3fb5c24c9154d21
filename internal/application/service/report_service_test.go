package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/berichtwerk/sales-report-system/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// quietLogger keeps service logs out of test output
func quietLogger() logger.Logger {
	return logger.NewJSONLogger(io.Discard, logger.FatalLevel)
}

func TestBuildMonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Aggregates loaded records", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		records := []entity.SaleRecord{
			saleOn(t, "2024-03-05", "100", "USD"),
			saleOn(t, "2024-03-10", "50", "EUR"),
		}
		source.On("Load", ctx).Return(records, nil).Once()

		result, err := svc.BuildMonthlyReport(ctx, 2024, 3)

		require.NoError(t, err)
		assert.Equal(t, "Gesamt Umsatz in USD: 155.00", result.Lines[2])
		source.AssertExpectations(t)
	})

	t.Run("Source errors are returned unmodified", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		srcErr := &repository.SourceUnavailableError{
			Source: "records.json",
			Err:    errors.New("no such file"),
		}
		source.On("Load", ctx).Return(nil, srcErr).Once()

		result, err := svc.BuildMonthlyReport(ctx, 2024, 3)

		assert.Nil(t, result)

		var target *repository.SourceUnavailableError
		require.ErrorAs(t, err, &target)
		assert.Same(t, srcErr, target)
		source.AssertExpectations(t)
	})
}

func TestPublishMonthlyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes the report under its destination key", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		records := []entity.SaleRecord{
			saleOn(t, "2024-03-05", "100", "USD"),
		}
		source.On("Load", ctx).Return(records, nil).Once()

		expectedLines := []string{
			"Monatlicher Verkaufsbericht (03/2024)",
			"----------------------------------------",
			"Gesamt Umsatz in USD: 100.00",
		}
		sink.On("Write", ctx, "report_2024_03", expectedLines).Return(nil).Once()

		result, destination, err := svc.PublishMonthlyReport(ctx, 2024, 3)

		require.NoError(t, err)
		assert.Equal(t, "report_2024_03", destination)
		assert.Equal(t, expectedLines, result.Lines)
		source.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("Sink is not touched when the source fails", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		source.On("Load", ctx).Return(nil, &repository.SourceUnavailableError{
			Source: "records.json",
			Err:    errors.New("connection refused"),
		}).Once()

		_, _, err := svc.PublishMonthlyReport(ctx, 2024, 3)

		assert.Error(t, err)
		sink.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Sink errors are returned unmodified", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		source.On("Load", ctx).Return([]entity.SaleRecord{}, nil).Once()

		sinkErr := &repository.WriteFailureError{
			Destination: "report_2024_03",
			Err:         errors.New("disk full"),
		}
		sink.On("Write", ctx, "report_2024_03", mock.Anything).Return(sinkErr).Once()

		result, destination, err := svc.PublishMonthlyReport(ctx, 2024, 3)

		assert.Nil(t, result)
		assert.Empty(t, destination)

		var target *repository.WriteFailureError
		require.ErrorAs(t, err, &target)
		assert.Same(t, sinkErr, target)
	})

	t.Run("Empty month publishes a zero report", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		source.On("Load", ctx).Return([]entity.SaleRecord{}, nil).Once()
		sink.On("Write", ctx, "report_2024_11", mock.MatchedBy(func(lines []string) bool {
			return len(lines) == 3 && lines[2] == "Gesamt Umsatz in USD: 0.00"
		})).Return(nil).Once()

		_, destination, err := svc.PublishMonthlyReport(ctx, 2024, 11)

		require.NoError(t, err)
		assert.Equal(t, "report_2024_11", destination)
		sink.AssertExpectations(t)
	})
}

func TestPublishYear(t *testing.T) {
	ctx := context.Background()

	t.Run("Publishes all twelve months from one load", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		records := []entity.SaleRecord{
			saleOn(t, "2024-03-05", "100", "USD"),
			saleOn(t, "2024-07-01", "50", "EUR"),
		}
		source.On("Load", ctx).Return(records, nil).Once()

		for month := 1; month <= 12; month++ {
			destination := fmt.Sprintf("report_2024_%02d", month)
			sink.On("Write", mock.Anything, destination, mock.Anything).Return(nil).Once()
		}

		results, err := svc.PublishYear(ctx, 2024)

		require.NoError(t, err)
		require.Len(t, results, 12)

		for i, result := range results {
			require.NotNil(t, result)
			assert.Equal(t, i+1, result.Period.Month)
		}

		// March and July carry the converted totals, the rest are zero
		assert.True(t, results[2].Total.Equal(decimal.NewFromInt(100)))
		assert.True(t, results[6].Total.Equal(decimal.NewFromInt(55)))
		assert.True(t, results[0].Total.IsZero())

		source.AssertExpectations(t)
		sink.AssertExpectations(t)
	})

	t.Run("A failing write surfaces its error", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		source.On("Load", ctx).Return([]entity.SaleRecord{}, nil).Once()

		sinkErr := &repository.WriteFailureError{
			Destination: "report_2024_06",
			Err:         errors.New("disk full"),
		}
		sink.On("Write", mock.Anything, "report_2024_06", mock.Anything).Return(sinkErr)
		sink.On("Write", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		results, err := svc.PublishYear(ctx, 2024)

		assert.Nil(t, results)

		var target *repository.WriteFailureError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "report_2024_06", target.Destination)
	})

	t.Run("Load failure stops the whole batch", func(t *testing.T) {
		source := new(mocks.MockRecordSource)
		sink := new(mocks.MockReportSink)
		svc := NewReportService(source, sink, usdRates(t), quietLogger())

		source.On("Load", ctx).Return(nil, &repository.SourceUnavailableError{
			Source: "badger",
			Err:    errors.New("closed"),
		}).Once()

		results, err := svc.PublishYear(ctx, 2024)

		assert.Nil(t, results)
		assert.Error(t, err)
		sink.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNewReportService(t *testing.T) {
	t.Run("Nil rates default to a bare USD table", func(t *testing.T) {
		svc := NewReportService(new(mocks.MockRecordSource), new(mocks.MockReportSink), nil, quietLogger())

		assert.Equal(t, "USD", svc.Rates().BaseCurrency())
		assert.True(t, svc.Rates().Lookup("EUR").Equal(decimal.NewFromInt(1)))
	})
}

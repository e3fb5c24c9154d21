// internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockRecordSource mocks the RecordSource interface
type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) Load(ctx context.Context) ([]entity.SaleRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SaleRecord), args.Error(1)
}

// MockReportSink mocks the ReportSink interface
type MockReportSink struct {
	mock.Mock
}

func (m *MockReportSink) Write(ctx context.Context, destination string, lines []string) error {
	args := m.Called(ctx, destination, lines)
	return args.Error(0)
}

// MockSaleRecordRepository mocks the SaleRecordRepository interface
type MockSaleRecordRepository struct {
	mock.Mock
}

func (m *MockSaleRecordRepository) Load(ctx context.Context) ([]entity.SaleRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SaleRecord), args.Error(1)
}

func (m *MockSaleRecordRepository) Store(ctx context.Context, record *entity.SaleRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *MockSaleRecordRepository) FindByID(ctx context.Context, id string) (*entity.SaleRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SaleRecord), args.Error(1)
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	m.Called(key, value)
	return m
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	m.Called(fields)
	return m
}

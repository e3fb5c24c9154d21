package scheduler

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() logger.Logger {
	return logger.NewJSONLogger(io.Discard, logger.FatalLevel)
}

// mockPublisher mocks the ReportPublisher interface
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishMonthlyReport(ctx context.Context, year, month int) (*entity.ReportResult, string, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.ReportResult), args.String(1), args.Error(2)
}

// stubJob is a trivial job for scheduler-level tests
type stubJob struct {
	name string
	err  error
	runs int
}

func (j *stubJob) Run() error {
	j.runs++
	return j.err
}

func (j *stubJob) Name() string { return j.name }

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantYear  int
		wantMonth int
	}{
		{
			name:      "mid-year",
			now:       time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC),
			wantYear:  2024,
			wantMonth: 6,
		},
		{
			name:      "january rolls back to december",
			now:       time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			wantYear:  2023,
			wantMonth: 12,
		},
		{
			name:      "december",
			now:       time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
			wantYear:  2024,
			wantMonth: 11,
		},
		{
			// Naive month subtraction via AddDate would normalize
			// March 31 into March again; the rollover must not.
			name:      "last day of a long month",
			now:       time.Date(2024, 3, 31, 6, 0, 0, 0, time.UTC),
			wantYear:  2024,
			wantMonth: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month := PreviousMonth(tt.now)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}

func TestMonthlyReportJobRun(t *testing.T) {
	t.Run("Publishes the previous month", func(t *testing.T) {
		publisher := new(mockPublisher)
		publisher.On("PublishMonthlyReport", mock.MatchedBy(func(ctx context.Context) bool {
			// Every job run carries its own request ID for log correlation
			return strings.HasPrefix(middleware.GetRequestID(ctx), "job-")
		}), 2024, 6).Return(&entity.ReportResult{}, "report_2024_06", nil).Once()

		job := NewMonthlyReportJob(publisher)
		job.now = func() time.Time {
			return time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC)
		}

		err := job.Run()

		require.NoError(t, err)
		publisher.AssertExpectations(t)
	})

	t.Run("Publisher failure surfaces", func(t *testing.T) {
		publisher := new(mockPublisher)
		publisher.On("PublishMonthlyReport", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, "", errors.New("sink down"))

		job := NewMonthlyReportJob(publisher)

		err := job.Run()

		assert.EqualError(t, err, "sink down")
	})

	t.Run("Name", func(t *testing.T) {
		assert.Equal(t, "monthly-report", NewMonthlyReportJob(nil).Name())
	})
}

func TestSchedulerAddJob(t *testing.T) {
	t.Run("Valid schedule", func(t *testing.T) {
		s := New(quietLogger())

		err := s.AddJob("0 6 1 * *", &stubJob{name: "test-job"})

		assert.NoError(t, err)
	})

	t.Run("Descriptor schedule", func(t *testing.T) {
		s := New(quietLogger())

		err := s.AddJob("@monthly", &stubJob{name: "test-job"})

		assert.NoError(t, err)
	})

	t.Run("Invalid schedule", func(t *testing.T) {
		s := New(quietLogger())

		err := s.AddJob("not a schedule", &stubJob{name: "test-job"})

		assert.Error(t, err)
	})
}

func TestSchedulerRunNow(t *testing.T) {
	t.Run("Runs the job outside its schedule", func(t *testing.T) {
		s := New(quietLogger())
		job := &stubJob{name: "test-job"}

		err := s.RunNow(job)

		require.NoError(t, err)
		assert.Equal(t, 1, job.runs)
	})

	t.Run("Job failure surfaces", func(t *testing.T) {
		s := New(quietLogger())
		job := &stubJob{name: "test-job", err: errors.New("boom")}

		err := s.RunNow(job)

		assert.EqualError(t, err, "boom")
	})
}

func TestSchedulerStartStop(t *testing.T) {
	s := New(quietLogger())
	require.NoError(t, s.AddJob("0 6 1 * *", &stubJob{name: "test-job"}))

	s.Start()
	s.Stop()
}

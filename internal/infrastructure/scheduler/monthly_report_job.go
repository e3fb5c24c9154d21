package scheduler

import (
	"context"
	"time"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/middleware"
	"github.com/google/uuid"
)

// ReportPublisher is the part of the report service the job needs
type ReportPublisher interface {
	PublishMonthlyReport(ctx context.Context, year, month int) (*entity.ReportResult, string, error)
}

// MonthlyReportJob publishes the report for the previous calendar
// month. Scheduled shortly after month rollover it produces the
// routine end-of-month report.
type MonthlyReportJob struct {
	publisher ReportPublisher
	now       func() time.Time
}

// NewMonthlyReportJob creates the job around a report publisher
func NewMonthlyReportJob(publisher ReportPublisher) *MonthlyReportJob {
	return &MonthlyReportJob{
		publisher: publisher,
		now:       time.Now,
	}
}

// Name identifies the job in scheduler logs
func (j *MonthlyReportJob) Name() string {
	return "monthly-report"
}

// Run publishes the previous month's report
func (j *MonthlyReportJob) Run() error {
	year, month := PreviousMonth(j.now())

	ctx := middleware.WithRequestID(context.Background(), "job-"+uuid.New().String())

	_, _, err := j.publisher.PublishMonthlyReport(ctx, year, month)
	return err
}

// PreviousMonth returns the calendar month immediately before the one
// containing the given time. January rolls back to December of the
// prior year.
func PreviousMonth(now time.Time) (year, month int) {
	y, m, _ := now.Date()
	if m == time.January {
		return y - 1, int(time.December)
	}
	return y, int(m) - 1
}

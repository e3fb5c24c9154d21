package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const reportSeparatorWidth = 40

// ReportPeriod identifies the calendar month a report covers
type ReportPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Validate ensures the period is a real calendar month
func (p ReportPeriod) Validate() error {
	if p.Year < 1 {
		return errors.New("year must be positive")
	}

	if p.Month < 1 || p.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}

	return nil
}

// DestinationKey returns the storage key the report is published under,
// e.g. "report_2024_03"
func (p ReportPeriod) DestinationKey() string {
	return fmt.Sprintf("report_%04d_%02d", p.Year, p.Month)
}

// String formats the period as MM/YYYY
func (p ReportPeriod) String() string {
	return fmt.Sprintf("%02d/%04d", p.Month, p.Year)
}

// ReportResult is a rendered monthly sales report
type ReportResult struct {
	Period       ReportPeriod    `json:"period"`
	Total        decimal.Decimal `json:"total"`
	BaseCurrency string          `json:"base_currency"`
	Lines        []string        `json:"lines"`
}

// NewReportResult renders the report lines for the given period and
// converted total. The total is always shown with two decimal places.
func NewReportResult(period ReportPeriod, total decimal.Decimal, baseCurrency string) *ReportResult {
	lines := []string{
		fmt.Sprintf("Monatlicher Verkaufsbericht (%s)", period),
		strings.Repeat("-", reportSeparatorWidth),
		fmt.Sprintf("Gesamt Umsatz in %s: %s", baseCurrency, total.StringFixed(2)),
	}

	return &ReportResult{
		Period:       period,
		Total:        total,
		BaseCurrency: baseCurrency,
		Lines:        lines,
	}
}

// Text returns the report as a single string with one line per row
func (r *ReportResult) Text() string {
	return strings.Join(r.Lines, "\n")
}

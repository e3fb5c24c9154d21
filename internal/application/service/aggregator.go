package service

import (
	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Aggregate builds the monthly sales report for the given calendar
// month. Records outside the month are ignored. Each matching amount is
// converted into the table's base currency and added to the total; the
// sum keeps full decimal precision and is only rounded when rendered.
//
// The month value is not range-checked here. A month that matches no
// record dates simply produces a report with a total of zero.
func Aggregate(records []entity.SaleRecord, year, month int, rates *entity.ExchangeRateTable) *entity.ReportResult {
	total := decimal.Zero

	for _, record := range records {
		if !record.InMonth(year, month) {
			continue
		}

		total = total.Add(record.Amount.Mul(rates.Lookup(record.Currency)))
	}

	period := entity.ReportPeriod{Year: year, Month: month}

	return entity.NewReportResult(period, total, rates.BaseCurrency())
}

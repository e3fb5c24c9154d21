package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord represents a single completed sale
type SaleRecord struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Validate ensures the sale record meets all requirements
func (s *SaleRecord) Validate() error {
	if s.Date.IsZero() {
		return errors.New("date must be set")
	}

	if s.Currency == "" {
		return errors.New("currency must not be empty")
	}

	if s.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}

	return nil
}

// InMonth reports whether the sale falls in the given calendar month
func (s *SaleRecord) InMonth(year, month int) bool {
	return s.Date.Year() == year && int(s.Date.Month()) == month
}

package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRateTable holds conversion rates from each currency into a
// single base currency. Rates are multipliers: an amount in currency C
// converts to base as amount * rate(C).
type ExchangeRateTable struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewExchangeRateTable builds a rate table for the given base currency.
// Currency codes are normalized to upper case. The base currency always
// maps to 1.0; a conflicting rate for it is rejected.
func NewExchangeRateTable(base string, rates map[string]decimal.Decimal) (*ExchangeRateTable, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, errors.New("base currency must not be empty")
	}

	normalized := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return nil, errors.New("currency code must not be empty")
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive, got %s", code, rate)
		}
		normalized[code] = rate
	}

	one := decimal.NewFromInt(1)
	if rate, ok := normalized[base]; ok && !rate.Equal(one) {
		return nil, fmt.Errorf("rate for base currency %s must be 1, got %s", base, rate)
	}
	normalized[base] = one

	return &ExchangeRateTable{base: base, rates: normalized}, nil
}

// Lookup returns the conversion rate for the given currency code.
// Lookups are case-insensitive. Unknown currencies fall back to a rate
// of 1.0, treating the amount as already being in the base currency.
func (t *ExchangeRateTable) Lookup(currency string) decimal.Decimal {
	if rate, ok := t.rates[strings.ToUpper(strings.TrimSpace(currency))]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// Known reports whether an explicit rate exists for the currency
func (t *ExchangeRateTable) Known(currency string) bool {
	_, ok := t.rates[strings.ToUpper(strings.TrimSpace(currency))]
	return ok
}

// BaseCurrency returns the currency all amounts convert into
func (t *ExchangeRateTable) BaseCurrency() string {
	return t.base
}

// Currencies returns the currency codes with explicit rates, sorted
func (t *ExchangeRateTable) Currencies() []string {
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

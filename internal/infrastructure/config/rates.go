package config

import (
	"fmt"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// rateFile mirrors the rate table file layout:
//
//	base: USD
//	rates:
//	  EUR: 1.1
//	  GBP: 1.3
type rateFile struct {
	Base  string             `mapstructure:"base"`
	Rates map[string]float64 `mapstructure:"rates"`
}

// DefaultRateTable returns the built-in conversion table: USD base,
// EUR at 1.1 and GBP at 1.3.
func DefaultRateTable() *entity.ExchangeRateTable {
	table, err := entity.NewExchangeRateTable("USD", map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("1.1"),
		"GBP": decimal.RequireFromString("1.3"),
	})
	if err != nil {
		panic(err)
	}
	return table
}

// LoadRateTable reads a conversion table from the given file. The
// format is inferred from the file extension (YAML, JSON or TOML). An
// empty path yields a built-in table: the default table when the base
// is USD, otherwise an empty table for that base where every currency
// falls back to a rate of 1.0.
//
// A base currency set in the file wins over the fallback base.
func LoadRateTable(path, fallbackBase string) (*entity.ExchangeRateTable, error) {
	if fallbackBase == "" {
		fallbackBase = "USD"
	}

	if path == "" {
		if fallbackBase == "USD" {
			return DefaultRateTable(), nil
		}
		return entity.NewExchangeRateTable(fallbackBase, nil)
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rate table file: %w", err)
	}

	var file rateFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse rate table file: %w", err)
	}

	base := file.Base
	if base == "" {
		base = fallbackBase
	}

	rates := make(map[string]decimal.Decimal, len(file.Rates))
	for code, rate := range file.Rates {
		rates[code] = decimal.NewFromFloat(rate)
	}

	table, err := entity.NewExchangeRateTable(base, rates)
	if err != nil {
		return nil, fmt.Errorf("invalid rate table in %s: %w", path, err)
	}

	return table, nil
}

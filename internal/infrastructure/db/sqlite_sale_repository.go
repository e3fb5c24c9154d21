package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// SQLiteSaleRepository implements the sale record repository interface
// using SQLite. Amounts are stored as decimal strings so no precision
// is lost to floating point columns.
type SQLiteSaleRepository struct {
	db *sql.DB
}

// NewSQLiteSaleRepository opens (or creates) the database at the given
// path and applies pending schema migrations.
func NewSQLiteSaleRepository(dbPath string) (*SQLiteSaleRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteSaleRepository{db: db}, nil
}

// Close releases the underlying database handle
func (r *SQLiteSaleRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Store saves a sale record and returns its ID
func (r *SQLiteSaleRepository) Store(ctx context.Context, record *entity.SaleRecord) (string, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales (id, sale_date, amount, currency) VALUES (?, ?, ?, ?)`,
		record.ID,
		record.Date.UTC().Format(time.RFC3339),
		record.Amount.String(),
		record.Currency,
	)
	if err != nil {
		return "", fmt.Errorf("failed to store sale record: %w", err)
	}

	return record.ID, nil
}

// FindByID retrieves a sale record by its unique identifier
func (r *SQLiteSaleRepository) FindByID(ctx context.Context, id string) (*entity.SaleRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sale_date, amount, currency FROM sales WHERE id = ?`, id)

	record, err := scanSale(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sale record: %w", err)
	}

	return record, nil
}

// Load retrieves every stored sale record in date order
func (r *SQLiteSaleRepository) Load(ctx context.Context) ([]entity.SaleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sale_date, amount, currency FROM sales ORDER BY sale_date, id`)
	if err != nil {
		return nil, &repository.SourceUnavailableError{Source: "sqlite", Err: err}
	}
	defer rows.Close()

	var records []entity.SaleRecord
	for rows.Next() {
		record, err := scanSale(rows.Scan)
		if err != nil {
			return nil, &repository.MalformedDataError{Source: "sqlite", Err: err}
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, &repository.SourceUnavailableError{Source: "sqlite", Err: err}
	}

	return records, nil
}

// scanSale decodes one sales row from either a Row or Rows scan func
func scanSale(scan func(dest ...interface{}) error) (*entity.SaleRecord, error) {
	var (
		record   entity.SaleRecord
		dateText string
		amount   string
	)

	if err := scan(&record.ID, &dateText, &amount, &record.Currency); err != nil {
		return nil, err
	}

	date, err := time.Parse(time.RFC3339, dateText)
	if err != nil {
		return nil, fmt.Errorf("parse sale date %q: %w", dateText, err)
	}
	record.Date = date

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	record.Amount = value

	return &record, nil
}

package handler

import "github.com/shopspring/decimal"

// RecordSaleRequest represents the request body for recording a sale.
// Amount is a pointer so an absent key is not mistaken for a zero sale.
type RecordSaleRequest struct {
	Date     string           `json:"date"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency string           `json:"currency"`
}

// RecordSaleResponse represents the response for the record sale endpoint
type RecordSaleResponse struct {
	ID string `json:"id"`
}

// SaleResponse represents the response for sale retrieval endpoints
type SaleResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ReportResponse represents the response for report endpoints. Total is
// rendered as a string with two decimal places.
type ReportResponse struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	Total       string   `json:"total"`
	Currency    string   `json:"currency"`
	Lines       []string `json:"lines"`
	Destination string   `json:"destination,omitempty"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

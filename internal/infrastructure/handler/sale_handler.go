package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/berichtwerk/sales-report-system/internal/application/service"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// SaleHandler handles HTTP requests for sale records
type SaleHandler struct {
	service *service.SaleService
	logger  logger.Logger
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service *service.SaleService, log logger.Logger) *SaleHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &SaleHandler{
		service: service,
		logger:  log,
	}
}

// RecordSale handles the creation of a new sale record
func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	h.logger.Info("Handling record sale request", map[string]interface{}{
		"request_id": requestID,
		"method":     r.Method,
		"path":       r.URL.Path,
	})

	// Parse request body
	var req RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	// Amount must be present in the body
	if req.Amount == nil {
		h.logger.Warn("Missing amount", map[string]interface{}{
			"request_id": requestID,
		})
		sendErrorResponse(w, h.logger, "Missing amount",
			"The request body must include an amount", http.StatusBadRequest, requestID)
		return
	}

	// Validate amount is not negative
	if req.Amount.IsNegative() {
		h.logger.Warn("Invalid amount", map[string]interface{}{
			"request_id": requestID,
			"amount":     req.Amount.String(),
		})
		sendErrorResponse(w, h.logger, "Invalid amount",
			"Amount must not be negative", http.StatusBadRequest, requestID)
		return
	}

	// Currency codes should be 3 characters
	if len(req.Currency) != 3 {
		h.logger.Warn("Invalid currency code", map[string]interface{}{
			"request_id": requestID,
			"currency":   req.Currency,
			"length":     len(req.Currency),
		})
		sendErrorResponse(w, h.logger, "Invalid currency code",
			"Currency code should be 3 characters (e.g., USD, EUR, GBP)", http.StatusBadRequest, requestID)
		return
	}

	// Parse date
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.logger.Warn("Invalid date format", map[string]interface{}{
			"request_id": requestID,
			"date":       req.Date,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid date format",
			"Date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
		return
	}

	// Don't allow future dates
	if date.After(time.Now()) {
		h.logger.Warn("Future date not allowed", map[string]interface{}{
			"request_id": requestID,
			"date":       req.Date,
		})
		sendErrorResponse(w, h.logger, "Future date not allowed",
			"Sale date cannot be in the future", http.StatusBadRequest, requestID)
		return
	}

	// Call service
	id, err := h.service.RecordSale(r.Context(), date, *req.Amount, req.Currency)
	if err != nil {
		h.logger.Error("Failed to record sale", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while recording the sale",
			http.StatusInternalServerError, requestID)
		return
	}

	h.logger.Info("Sale recorded successfully", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	// Return success response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RecordSaleResponse{ID: id})
}

// GetSale handles retrieving a sale record by ID
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	// Get ID from URL
	vars := mux.Vars(r)
	id := vars["id"]

	h.logger.Info("Handling get sale request", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	// Call service
	record, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			h.logger.Warn("Sale not found", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
			})
			sendErrorResponse(w, h.logger, "Sale not found",
				"The requested sale record could not be found", http.StatusNotFound, requestID)
		} else {
			h.logger.Error("Unexpected error in get sale", map[string]interface{}{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Internal server error",
				"An unexpected error occurred while retrieving the sale record",
				http.StatusInternalServerError, requestID)
		}
		return
	}

	h.logger.Info("Sale retrieved successfully", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	// Create response
	resp := SaleResponse{
		ID:       record.ID,
		Date:     record.Date.Format("2006-01-02"),
		Amount:   record.Amount.String(),
		Currency: record.Currency,
	}

	// Return response
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers the sale handler routes
func (h *SaleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/sales", h.RecordSale).Methods("POST")
	router.HandleFunc("/sales/{id}", h.GetSale).Methods("GET")

	h.logger.Info("Sale routes registered", map[string]interface{}{
		"routes": []string{
			"POST /sales",
			"GET /sales/{id}",
		},
	})
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}

// Package handler internal/infrastructure/handler/report_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/berichtwerk/sales-report-system/internal/application/service"
	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ReportHandler handles HTTP requests for monthly sales reports
type ReportHandler struct {
	service *service.ReportService
	logger  logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *service.ReportService, log logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ReportHandler{
		service: service,
		logger:  log,
	}
}

// GetReport builds the report for the requested month without
// publishing it
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	period, ok := h.parsePeriod(w, r, requestID)
	if !ok {
		return
	}

	h.logger.Info("Handling get report request", map[string]interface{}{
		"request_id": requestID,
		"period":     period.String(),
	})

	result, err := h.service.BuildMonthlyReport(r.Context(), period.Year, period.Month)
	if err != nil {
		h.sendReportError(w, err, requestID)
		return
	}

	h.writeReport(w, result, "")
}

// PublishReport builds the report for the requested month and writes it
// through the report sink
func (h *ReportHandler) PublishReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	period, ok := h.parsePeriod(w, r, requestID)
	if !ok {
		return
	}

	h.logger.Info("Handling publish report request", map[string]interface{}{
		"request_id": requestID,
		"period":     period.String(),
	})

	result, destination, err := h.service.PublishMonthlyReport(r.Context(), period.Year, period.Month)
	if err != nil {
		h.sendReportError(w, err, requestID)
		return
	}

	h.logger.Info("Report published", map[string]interface{}{
		"request_id":  requestID,
		"destination": destination,
	})

	h.writeReport(w, result, destination)
}

// parsePeriod extracts and validates the year and month path variables.
// On failure it writes the error response and returns false.
func (h *ReportHandler) parsePeriod(w http.ResponseWriter, r *http.Request, requestID string) (entity.ReportPeriod, bool) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		h.logger.Warn("Invalid year", map[string]interface{}{
			"request_id": requestID,
			"year":       vars["year"],
		})
		sendErrorResponse(w, h.logger, "Invalid year",
			"Year must be a number", http.StatusBadRequest, requestID)
		return entity.ReportPeriod{}, false
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil {
		h.logger.Warn("Invalid month", map[string]interface{}{
			"request_id": requestID,
			"month":      vars["month"],
		})
		sendErrorResponse(w, h.logger, "Invalid month",
			"Month must be a number", http.StatusBadRequest, requestID)
		return entity.ReportPeriod{}, false
	}

	period := entity.ReportPeriod{Year: year, Month: month}
	if err := period.Validate(); err != nil {
		h.logger.Warn("Invalid report period", map[string]interface{}{
			"request_id": requestID,
			"year":       year,
			"month":      month,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid report period",
			"Year must be positive and month must be between 1 and 12", http.StatusBadRequest, requestID)
		return entity.ReportPeriod{}, false
	}

	return period, true
}

// sendReportError maps domain errors onto HTTP status codes
func (h *ReportHandler) sendReportError(w http.ResponseWriter, err error, requestID string) {
	var (
		sourceErr    *repository.SourceUnavailableError
		malformedErr *repository.MalformedDataError
		writeErr     *repository.WriteFailureError
	)

	switch {
	case errors.As(err, &sourceErr):
		h.logger.Error("Record source unavailable", map[string]interface{}{
			"request_id": requestID,
			"source":     sourceErr.Source,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Record source unavailable",
			"The sale record source could not be reached. Please try again later.",
			http.StatusServiceUnavailable, requestID)
	case errors.As(err, &malformedErr):
		h.logger.Error("Malformed sale records", map[string]interface{}{
			"request_id": requestID,
			"source":     malformedErr.Source,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Malformed sale records",
			"Stored sale records could not be decoded",
			http.StatusInternalServerError, requestID)
	case errors.As(err, &writeErr):
		h.logger.Error("Report write failed", map[string]interface{}{
			"request_id":  requestID,
			"destination": writeErr.Destination,
			"error":       err.Error(),
		})
		sendErrorResponse(w, h.logger, "Report write failed",
			"The report could not be published to its destination",
			http.StatusInternalServerError, requestID)
	default:
		h.logger.Error("Unexpected error in report handler", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Internal server error",
			"An unexpected error occurred while building the report",
			http.StatusInternalServerError, requestID)
	}
}

// writeReport sends the report response, including the destination key
// when the report was published
func (h *ReportHandler) writeReport(w http.ResponseWriter, result *entity.ReportResult, destination string) {
	resp := ReportResponse{
		Year:        result.Period.Year,
		Month:       result.Period.Month,
		Total:       result.Total.StringFixed(2),
		Currency:    result.BaseCurrency,
		Lines:       result.Lines,
		Destination: destination,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers the report handler routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reports/{year}/{month}", h.GetReport).Methods("GET")
	router.HandleFunc("/reports/{year}/{month}", h.PublishReport).Methods("POST")

	h.logger.Info("Report routes registered", map[string]interface{}{
		"routes": []string{
			"GET /reports/{year}/{month}",
			"POST /reports/{year}/{month}",
		},
	})
}

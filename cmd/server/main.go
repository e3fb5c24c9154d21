package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/berichtwerk/sales-report-system/internal/application/service"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/config"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/db"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/handler"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/middleware"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/scheduler"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/sink"
	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine, the environment still applies
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting sales report server", map[string]interface{}{
		"backend": cfg.DataBackend,
		"port":    cfg.Port,
	})

	// Setup the sale record store
	repo, closeRepo, err := openRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to open sale record store", map[string]interface{}{
			"backend": cfg.DataBackend,
			"error":   err.Error(),
		})
	}
	defer closeRepo()

	// Load the conversion table
	rates, err := config.LoadRateTable(cfg.RatesFile, cfg.BaseCurrency)
	if err != nil {
		log.Fatal("Failed to load rate table", map[string]interface{}{
			"rates_file": cfg.RatesFile,
			"error":      err.Error(),
		})
	}

	log.Info("Rate table loaded", map[string]interface{}{
		"base":       rates.BaseCurrency(),
		"currencies": rates.Currencies(),
	})

	reportSink := sink.NewFileReportSink(cfg.ReportDir)

	// Initialize services
	saleService := service.NewSaleService(repo)
	reportService := service.NewReportService(repo, reportSink, rates, log)

	// Initialize handlers
	saleHandler := handler.NewSaleHandler(saleService, log)
	reportHandler := handler.NewReportHandler(reportService, log)

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	saleHandler.RegisterRoutes(router)
	reportHandler.RegisterRoutes(router)

	// Schedule the routine monthly report when configured
	if cfg.ReportSchedule != "" {
		sched := scheduler.New(log)
		if err := sched.AddJob(cfg.ReportSchedule, scheduler.NewMonthlyReportJob(reportService)); err != nil {
			log.Fatal("Failed to schedule monthly report", map[string]interface{}{
				"schedule": cfg.ReportSchedule,
				"error":    err.Error(),
			})
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
		}
		cancel()
	}()

	log.Info("Server listening", map[string]interface{}{
		"addr": srv.Addr,
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	<-ctx.Done()
	log.Info("Server stopped gracefully", nil)
}

// openRepository opens the configured sale record store and returns it
// together with its cleanup function
func openRepository(cfg *config.Config, log logger.Logger) (repository.SaleRecordRepository, func(), error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		repo, err := db.NewSQLiteSaleRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}

		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error("Error closing SQLite store", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}, nil

	default:
		if err := os.MkdirAll(cfg.BadgerPath, 0o755); err != nil {
			return nil, nil, err
		}

		badgerOpts := badger.DefaultOptions(cfg.BadgerPath)
		badgerOpts.Logger = nil // Disable Badger's default logger

		badgerDB, err := badger.Open(badgerOpts)
		if err != nil {
			return nil, nil, err
		}

		return db.NewBadgerSaleRepository(badgerDB), func() {
			if err := badgerDB.Close(); err != nil {
				log.Error("Error closing BadgerDB", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}, nil
	}
}

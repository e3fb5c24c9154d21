package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/berichtwerk/sales-report-system/internal/application/service"
	"github.com/berichtwerk/sales-report-system/internal/domain/entity"
	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/config"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/logger"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/sink"
	"github.com/berichtwerk/sales-report-system/internal/infrastructure/source"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the reportctl command tree. Cobra's own error and
// usage printing is silenced so failures are reported exactly once, on
// stderr, and never end up in the report stream when writing to stdout.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reportctl",
		Short:         "Generate monthly sales reports from the command line",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newGenerateCmd())

	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	var (
		recordsPath string
		ratesPath   string
		outPath     string
		base        string
		year        int
		month       int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build and publish reports for one month or a whole year",
		Long: `Reads sale records from a JSON file, converts every amount into the
base currency and publishes the monthly report. With --month 0 the
reports for all twelve months of the year are generated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Keep stdout clean for report output
			log := logger.NewJSONLogger(cmd.ErrOrStderr(), logger.WarnLevel)

			if month != 0 {
				period := entity.ReportPeriod{Year: year, Month: month}
				if err := period.Validate(); err != nil {
					return err
				}
			} else if year < 1 {
				return fmt.Errorf("year must be positive, got %d", year)
			}

			rates, err := config.LoadRateTable(ratesPath, base)
			if err != nil {
				return err
			}

			records := source.NewFileRecordSource(recordsPath)

			toStdout := outPath == "-"

			var reportSink repository.ReportSink
			if toStdout {
				reportSink = sink.NewWriterReportSink(cmd.OutOrStdout())
			} else {
				reportSink = sink.NewFileReportSink(outPath)
			}

			svc := service.NewReportService(records, reportSink, rates, log)
			ctx := cmd.Context()

			if month != 0 {
				_, destination, err := svc.PublishMonthlyReport(ctx, year, month)
				if err != nil {
					return err
				}
				if !toStdout {
					cmd.Printf("Report written to %s\n", filepath.Join(outPath, destination+".txt"))
				}
				return nil
			}

			// All twelve months. Stdout gets them sequentially so the
			// output stays in month order; a directory sink publishes
			// them concurrently from a single record load.
			if toStdout {
				for m := 1; m <= 12; m++ {
					if _, _, err := svc.PublishMonthlyReport(ctx, year, m); err != nil {
						return err
					}
				}
				return nil
			}

			results, err := svc.PublishYear(ctx, year)
			if err != nil {
				return err
			}

			for _, result := range results {
				cmd.Printf("Report written to %s\n",
					filepath.Join(outPath, result.Period.DestinationKey()+".txt"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recordsPath, "records", "r", "", "Path to the JSON sale records file")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Report year")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Report month (1-12, 0 = all months)")
	cmd.Flags().StringVar(&ratesPath, "rates", "", "Rate table file (YAML, JSON or TOML); built-in table when omitted")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "Output directory, or - for stdout")
	cmd.Flags().StringVar(&base, "base", "USD", "Base currency used when the rate table does not set one")

	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

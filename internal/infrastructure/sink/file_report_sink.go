// Package sink provides report sinks that persist rendered reports.
package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
)

// FileReportSink writes each report to <dir>/<destination>.txt with one
// report line per file line and a trailing newline. Publishing the same
// destination again overwrites the previous report.
type FileReportSink struct {
	dir string
}

// NewFileReportSink creates a sink writing into the given directory
func NewFileReportSink(dir string) *FileReportSink {
	return &FileReportSink{dir: dir}
}

// Write stores the report lines under the given destination key
func (s *FileReportSink) Write(ctx context.Context, destination string, lines []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &repository.WriteFailureError{Destination: destination, Err: err}
	}

	path := filepath.Join(s.dir, destination+".txt")
	content := strings.Join(lines, "\n") + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &repository.WriteFailureError{Destination: destination, Err: err}
	}

	return nil
}

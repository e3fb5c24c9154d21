package sink

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/berichtwerk/sales-report-system/internal/domain/repository"
)

// WriterReportSink streams reports to a single io.Writer, one report
// line per output line with a trailing newline. A mutex keeps each
// report's lines contiguous when reports are published concurrently.
type WriterReportSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterReportSink creates a sink writing to w
func NewWriterReportSink(w io.Writer) *WriterReportSink {
	return &WriterReportSink{w: w}
}

// Write streams the report lines to the underlying writer
func (s *WriterReportSink) Write(ctx context.Context, destination string, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := strings.Join(lines, "\n") + "\n"

	if _, err := io.WriteString(s.w, content); err != nil {
		return &repository.WriteFailureError{Destination: destination, Err: err}
	}

	return nil
}

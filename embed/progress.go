package embed

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressReporter observes embedding progress. It is invoked after each
// batch with the processed and total chunk counts; implementations must not
// influence the pipeline.
type ProgressReporter interface {
	Report(processed, total int, message string)
}

// NopReporter discards progress reports.
type NopReporter struct{}

func (NopReporter) Report(int, int, string) {}

// WriterReporter writes progress lines to an io.Writer (typically
// os.Stderr), with the processing rate since the first report.
type WriterReporter struct {
	writer    io.Writer
	startTime time.Time
	mu        sync.Mutex
}

var _ ProgressReporter = (*WriterReporter)(nil)

// NewWriterReporter creates a progress reporter writing to writer.
func NewWriterReporter(writer io.Writer) *WriterReporter {
	return &WriterReporter{writer: writer}
}

// Report prints the current progress.
func (r *WriterReporter) Report(processed, total int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.startTime.IsZero() {
		r.startTime = time.Now()
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(processed) / float64(total) * 100.0
	}
	rate := float64(processed) / time.Since(r.startTime).Seconds()

	fmt.Fprintf(r.writer, "\r%s (%.1f%%) - %.1f chunks/s", message, percentage, rate)
	if processed >= total {
		fmt.Fprintln(r.writer) // Newline after final progress
	}
}

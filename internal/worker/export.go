package worker

import (
	"context"
	"log/slog"
	"time"
)

// Exporter writes the current portfolio to its destination.
type Exporter interface {
	Export(ctx context.Context) error
}

// ExportWorker periodically re-exports the portfolio while the dashboard runs.
type ExportWorker struct {
	exporter Exporter
	interval time.Duration
}

// NewExportWorker creates a new ExportWorker.
func NewExportWorker(exporter Exporter, interval time.Duration) *ExportWorker {
	return &ExportWorker{exporter: exporter, interval: interval}
}

func (w *ExportWorker) runOnce(ctx context.Context) {
	if err := w.exporter.Export(ctx); err != nil {
		slog.Error("ExportWorker: export failed", "error", err)
		return
	}
	slog.Info("ExportWorker: export completed")
}

// Run exports immediately, then once per interval. It blocks until the context is cancelled.
// A failed export is logged and retried at the next tick only.
func (w *ExportWorker) Run(ctx context.Context) {
	slog.Info("ExportWorker: starting", "interval", w.interval)

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ExportWorker: shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

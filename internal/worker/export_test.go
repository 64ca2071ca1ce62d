package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockExporter struct {
	callCount atomic.Int32
	err       error
}

func (m *mockExporter) Export(_ context.Context) error {
	m.callCount.Add(1)
	return m.err
}

func TestExportWorkerRunsAndShutdown(t *testing.T) {
	mock := &mockExporter{}
	w := NewExportWorker(mock, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	if got := mock.callCount.Load(); got < 2 {
		t.Errorf("call count = %d, want >= 2", got)
	}
}

func TestExportWorkerExportsOnStartup(t *testing.T) {
	mock := &mockExporter{}
	w := NewExportWorker(mock, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.Run(ctx)

	if got := mock.callCount.Load(); got != 1 {
		t.Errorf("call count = %d, want 1", got)
	}
}

func TestExportWorkerContinuesAfterFailure(t *testing.T) {
	mock := &mockExporter{err: errors.New("sheets unavailable")}
	w := NewExportWorker(mock, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	if got := mock.callCount.Load(); got < 2 {
		t.Errorf("call count = %d, want >= 2 despite failures", got)
	}
}

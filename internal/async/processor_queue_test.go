package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/joseph-ayodele/contracts-ledger/internal/pipeline"
	"github.com/joseph-ayodele/contracts-ledger/internal/registry"
)

// stalledSource parks every Text call until the gate closes, pinning the
// workers so the channel can be driven to full.
type stalledSource struct {
	gate chan struct{}
}

func (s *stalledSource) Text(ctx context.Context, _ string) (string, error) {
	select {
	case <-s.gate:
	case <-ctx.Done():
	}
	return "", errors.New("no text")
}

func newStalledProcessor(t *testing.T, gate chan struct{}) *pipeline.Processor {
	t.Helper()
	reg, err := registry.Open(filepath.Join(t.TempDir(), "reg.db"), nil)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })
	return &pipeline.Processor{
		Logger:   slog.Default(),
		Source:   &stalledSource{gate: gate},
		Registry: reg,
	}
}

func TestEnqueue_FullQueueNeverBlocksShutdown(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)

	q := NewProcessorQueue(newStalledProcessor(t, gate), slog.Default(),
		WithWorkers(1), WithQueueSize(1), WithProcessTimeout(time.Minute))

	// One job pins the worker, one fills the channel; within a few more
	// attempts Enqueue must report full instead of blocking.
	var full bool
	for i := 0; i < 10 && !full; i++ {
		full = errors.Is(q.Enqueue(context.Background(), Job{Path: fmt.Sprintf("/in/%d.pdf", i)}), ErrQueueFull)
	}
	if !full {
		t.Fatal("queue never reported full")
	}

	// Shutdown must return on its context deadline even though the worker
	// is still pinned and the channel is full.
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		q.Shutdown(ctx)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Shutdown stalled behind a full queue")
	}
}

func TestEnqueue_AfterShutdownIsNoOp(t *testing.T) {
	gate := make(chan struct{})
	close(gate)

	q := NewProcessorQueue(newStalledProcessor(t, gate), slog.Default(), WithWorkers(1))
	q.Shutdown(context.Background())
	if err := q.Enqueue(context.Background(), Job{Path: "/in/late.pdf"}); err != nil {
		t.Fatalf("Enqueue after shutdown = %v, want nil no-op", err)
	}
}

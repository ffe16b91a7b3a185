package registry

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "registry.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestMarkAndLookup(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	ok, err := r.IsProcessed(ctx, "/in/a.pdf")
	if err != nil || ok {
		t.Fatalf("fresh path = (%v, %v), want (false, nil)", ok, err)
	}

	if err := r.MarkProcessed(ctx, "/in/a.pdf"); err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	ok, err = r.IsProcessed(ctx, "/in/a.pdf")
	if err != nil || !ok {
		t.Fatalf("marked path = (%v, %v), want (true, nil)", ok, err)
	}

	// Remark must not error.
	if err := r.MarkProcessed(ctx, "/in/a.pdf"); err != nil {
		t.Fatalf("re-mark: %v", err)
	}

	ok, err = r.IsProcessed(ctx, "/in/b.pdf")
	if err != nil || ok {
		t.Fatalf("other path = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestClear(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	for _, p := range []string{"/in/a.pdf", "/in/b.pdf"} {
		if err := r.MarkProcessed(ctx, p); err != nil {
			t.Fatalf("MarkProcessed(%s): %v", p, err)
		}
	}
	n, err := r.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared = %d, want 2", n)
	}
	if ok, _ := r.IsProcessed(ctx, "/in/a.pdf"); ok {
		t.Error("path still marked after Clear")
	}
}

package portpool_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/giantswarm/launchpad/internal/portpool"
)

func newSQLiteStore(t *testing.T) *portpool.SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ports.db")
	store, err := portpool.NewSQLiteStore(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return store
}

func TestSQLiteStoreEmptyGet(t *testing.T) {
	t.Parallel()

	store := newSQLiteStore(t)

	ports, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get on fresh store returned error: %v", err)
	}
	if len(ports) != 0 {
		t.Errorf("Get on fresh store = %v, want empty", ports)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newSQLiteStore(t)
	ctx := context.Background()

	want := []int{9001, 9005, 9123}
	if err := store.Put(ctx, want); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Get = %v, want %v", got, want)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Errorf("Get[%d] = %d, want %d", idx, got[idx], want[idx])
		}
	}

	// Put replaces, not appends.
	if err := store.Put(ctx, []int{9200}); err != nil {
		t.Fatalf("second Put returned error: %v", err)
	}
	got, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got) != 1 || got[0] != 9200 {
		t.Errorf("Get after replace = %v, want [9200]", got)
	}
}

func TestSQLiteStoreLockRelease(t *testing.T) {
	t.Parallel()

	store := newSQLiteStore(t)
	ctx := context.Background()

	release, err := store.Lock(ctx)
	if err != nil {
		t.Fatalf("Lock returned error: %v", err)
	}
	release()

	// Re-acquirable after release.
	release, err = store.Lock(ctx)
	if err != nil {
		t.Fatalf("Lock after release returned error: %v", err)
	}
	release()
}

func TestAllocatorOverSQLiteStore(t *testing.T) {
	t.Parallel()

	store := newSQLiteStore(t)
	a := portpool.NewAllocator(store, 9000, 9005, 10000, nil)
	ctx := context.Background()

	port, err := a.Allocate(ctx)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}

	free, err := a.IsAvailable(ctx, port)
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if free {
		t.Error("IsAvailable after Allocate = true, want false")
	}

	if err := a.Release(ctx, port); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	free, err = a.IsAvailable(ctx, port)
	if err != nil {
		t.Fatalf("IsAvailable returned error: %v", err)
	}
	if !free {
		t.Error("IsAvailable after Release = false, want true")
	}
}

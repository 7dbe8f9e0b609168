package portpool_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/launchpad/internal/portpool"
)

func newTestAllocator(tb testing.TB, min, max int) *portpool.Allocator {
	tb.Helper()
	// A generous attempt bound keeps random-draw collisions from flaking
	// tests that allocate most of a small range.
	return portpool.NewAllocator(portpool.NewMemoryStore(), min, max, 10000, nil)
}

func TestAllocateWithinRange(t *testing.T) {
	t.Parallel()

	a := newTestAllocator(t, 9000, 9010)

	port, err := a.Allocate(context.Background())
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if port < 9000 || port > 9010 {
		t.Errorf("Allocate = %d, want within [9000, 9010]", port)
	}
}

func TestConcurrentAllocationsAreDistinct(t *testing.T) {
	t.Parallel()

	const n = 50
	a := newTestAllocator(t, 9000, 9099)
	ctx := context.Background()

	var (
		mu    sync.Mutex
		ports = make(map[int]int, n)
	)

	var g errgroup.Group
	for range n {
		g.Go(func() error {
			port, err := a.Allocate(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			ports[port]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent Allocate returned error: %v", err)
	}

	if len(ports) != n {
		t.Fatalf("got %d distinct ports from %d allocations, want %d", len(ports), n, n)
	}
	for port, count := range ports {
		if count != 1 {
			t.Errorf("port %d handed out %d times", port, count)
		}
		if port < 9000 || port > 9099 {
			t.Errorf("port %d outside configured range", port)
		}
	}
}

func TestReleaseThenReallocate(t *testing.T) {
	t.Parallel()

	// A single-port range makes reallocation deterministic.
	a := newTestAllocator(t, 9000, 9000)
	ctx := context.Background()

	port, err := a.Allocate(ctx)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if port != 9000 {
		t.Fatalf("Allocate = %d, want 9000", port)
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

	again, err := a.Allocate(ctx)
	if err != nil {
		t.Fatalf("Allocate after Release returned error: %v", err)
	}
	if again != port {
		t.Errorf("Allocate after Release = %d, want %d", again, port)
	}
}

func TestReleaseUntrackedPortIsNoOp(t *testing.T) {
	t.Parallel()

	a := newTestAllocator(t, 9000, 9010)

	if err := a.Release(context.Background(), 12345); err != nil {
		t.Errorf("Release of untracked port returned error: %v", err)
	}
}

func TestAllocateExhaustedPool(t *testing.T) {
	t.Parallel()

	a := newTestAllocator(t, 9000, 9001)
	ctx := context.Background()

	for range 2 {
		if _, err := a.Allocate(ctx); err != nil {
			t.Fatalf("Allocate returned error: %v", err)
		}
	}

	_, err := a.Allocate(ctx)
	if !errors.Is(err, portpool.ErrPoolExhausted) {
		t.Errorf("Allocate on full pool error = %v, want ErrPoolExhausted", err)
	}
}

func TestNewAllocatorPanicsOnInvalidRange(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("NewAllocator with inverted range did not panic")
		}
	}()
	portpool.NewAllocator(portpool.NewMemoryStore(), 9010, 9000, 20, nil)
}

package portpool

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/giantswarm/launchpad/internal/sentinel"
)

// ErrPoolExhausted is returned by Allocate when no free port is found within
// the configured number of attempts, or when every port in the range is
// already allocated.
const ErrPoolExhausted = sentinel.Error("port pool exhausted")

// Allocator hands out ports from a configured range, tracking allocations in
// a shared Store. It is safe for concurrent use by multiple goroutines; when
// the Store implements Locker it is also safe across processes.
type Allocator struct {
	// mu makes the draw-check-commit sequence indivisible within this
	// process. Two concurrent Allocate calls can therefore never observe
	// the same port as free.
	mu sync.Mutex

	store       Store
	min, max    int
	maxAttempts int
	log         *slog.Logger
}

// NewAllocator creates an Allocator drawing from [min, max] with at most
// maxAttempts random draws per Allocate call.
// If logger is nil, slog.Default() is used as a fallback.
//
// Panics if the range is not a valid port range or maxAttempts is not
// positive; these are construction-time programmer errors, validated
// eagerly like the public With* options.
func NewAllocator(store Store, min, max, maxAttempts int, logger *slog.Logger) *Allocator {
	if store == nil {
		panic("launchpad: NewAllocator store must not be nil")
	}
	if min < 1 || max > 65535 || min > max {
		panic(fmt.Sprintf("launchpad: invalid port range [%d, %d]", min, max))
	}
	if maxAttempts <= 0 {
		panic(fmt.Sprintf("launchpad: port attempts must be positive, got %d", maxAttempts))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Allocator{
		store:       store,
		min:         min,
		max:         max,
		maxAttempts: maxAttempts,
		log:         logger,
	}
}

// Allocate draws a free port from the range, records it in the store and
// returns it. Random candidates already present in the allocated set are
// rejected and redrawn up to the attempt bound, after which
// ErrPoolExhausted is returned.
func (a *Allocator) Allocate(ctx context.Context) (int, error) {
	unlock, err := a.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	ports, err := a.store.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("load allocated ports: %w", err)
	}

	rangeSize := a.max - a.min + 1
	if len(ports) >= rangeSize {
		return 0, fmt.Errorf("all %d ports in [%d, %d] allocated: %w", rangeSize, a.min, a.max, ErrPoolExhausted)
	}

	for range a.maxAttempts {
		candidate := a.min + rand.IntN(rangeSize)
		if slices.Contains(ports, candidate) {
			// Collision with an allocated port, redraw.
			a.log.Debug("port already allocated, retrying", "port", candidate)
			continue
		}
		if err := a.store.Put(ctx, append(ports, candidate)); err != nil {
			return 0, fmt.Errorf("store allocated port %d: %w", candidate, err)
		}
		return candidate, nil
	}

	return 0, fmt.Errorf("no free port in [%d, %d] after %d attempts: %w", a.min, a.max, a.maxAttempts, ErrPoolExhausted)
}

// Release removes port from the allocated set. Releasing a port that is not
// tracked is a silent no-op, not an error, so uninstall can always release
// whatever port it recovered without first checking ownership.
func (a *Allocator) Release(ctx context.Context, port int) error {
	unlock, err := a.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	ports, err := a.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("load allocated ports: %w", err)
	}

	idx := slices.Index(ports, port)
	if idx < 0 {
		return nil
	}

	if err := a.store.Put(ctx, slices.Delete(ports, idx, idx+1)); err != nil {
		return fmt.Errorf("store released port %d: %w", port, err)
	}
	return nil
}

// IsAvailable reports whether port is currently free in the pool.
func (a *Allocator) IsAvailable(ctx context.Context, port int) (bool, error) {
	ports, err := a.store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load allocated ports: %w", err)
	}
	return !slices.Contains(ports, port), nil
}

// lock acquires the process-local mutex and, when the store supports it, the
// store's cross-process lock. The returned function releases both.
func (a *Allocator) lock(ctx context.Context) (func(), error) {
	a.mu.Lock()

	locker, ok := a.store.(Locker)
	if !ok {
		return a.mu.Unlock, nil
	}

	release, err := locker.Lock(ctx)
	if err != nil {
		a.mu.Unlock()
		return nil, fmt.Errorf("lock port store: %w", err)
	}
	return func() {
		release()
		a.mu.Unlock()
	}, nil
}

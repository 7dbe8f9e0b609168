package portpool

import (
	"context"
	"sync"
)

// Store persists the set of allocated ports under a well-known key. The
// orchestrator treats it as a shared key-value cache: Get returns the whole
// set, Put replaces it.
//
// A Store implementation is not required to serialize concurrent
// read-modify-write sequences itself; the Allocator holds a process-local
// mutex around every Get/Put pair and additionally brackets the pair with
// the store's lock when the store implements Locker.
type Store interface {
	// Get returns the currently allocated ports. A store with no prior
	// state returns an empty set, not an error.
	Get(ctx context.Context) ([]int, error)

	// Put replaces the allocated port set.
	Put(ctx context.Context, ports []int) error
}

// Locker is an optional Store capability for cross-process exclusion.
// Stores shared between processes (e.g. the SQLite store) implement it so
// that an Allocator in one process cannot interleave its Get/Put pair with
// another process's.
type Locker interface {
	// Lock acquires exclusive access to the store and returns the release
	// function. It blocks until the lock is acquired or ctx is done.
	Lock(ctx context.Context) (release func(), err error)
}

// MemoryStore is an in-process Store. It is the default when no shared
// store is configured and is sufficient whenever a single process owns the
// port pool.
type MemoryStore struct {
	mu    sync.Mutex
	ports []int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns a copy of the allocated port set.
func (s *MemoryStore) Get(_ context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]int, len(s.ports))
	copy(cp, s.ports)
	return cp, nil
}

// Put replaces the allocated port set.
func (s *MemoryStore) Put(_ context.Context, ports []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ports = make([]int, len(ports))
	copy(s.ports, ports)
	return nil
}

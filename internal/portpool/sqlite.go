package portpool

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	// Register the pure-Go SQLite driver (no CGO required).
	_ "modernc.org/sqlite"
)

// portsKey is the well-known key the allocated-port set is stored under.
const portsKey = "launchpad/ports"

// fileLockRetryInterval is the interval between consecutive attempts to
// acquire the store's file lock. 50ms balances responsiveness against CPU
// overhead from busy-polling.
const fileLockRetryInterval = 50 * time.Millisecond

// Compile-time checks: SQLiteStore is a Store with cross-process locking.
var (
	_ Store  = (*SQLiteStore)(nil)
	_ Locker = (*SQLiteStore)(nil)
)

// SQLiteStore persists the allocated-port set in a SQLite database so the
// pool can be shared by every orchestrator process on the host. The set is
// stored JSON-encoded under a single key; cross-process exclusion during
// read-modify-write uses a file lock next to the database.
type SQLiteStore struct {
	db       *sql.DB
	lockPath string
	log      *slog.Logger
}

// NewSQLiteStore opens (creating if necessary) the port store database at
// path. The lock file is placed next to the database at path + ".lock".
// If logger is nil, slog.Default() is used as a fallback.
func NewSQLiteStore(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// WAL mode with a generous busy timeout handles concurrent access from
	// other orchestrator processes sharing the pool.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// Single connection — short-lived sessions, not a pool.
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value BLOB NOT NULL)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("create kv table: %w", err), closeErr)
	}

	return &SQLiteStore{
		db:       db,
		lockPath: path + ".lock",
		log:      logger,
	}, nil
}

// Get returns the allocated ports stored under the well-known key.
// A missing row means no ports have been allocated yet.
func (s *SQLiteStore) Get(ctx context.Context) ([]int, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, portsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query allocated ports: %w", err)
	}

	var ports []int
	if err := json.Unmarshal(raw, &ports); err != nil {
		return nil, fmt.Errorf("decode allocated ports: %w", err)
	}
	return ports, nil
}

// Put replaces the allocated port set under the well-known key.
func (s *SQLiteStore) Put(ctx context.Context, ports []int) error {
	raw, err := json.Marshal(ports)
	if err != nil {
		return fmt.Errorf("encode allocated ports: %w", err)
	}

	const upsert = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, upsert, portsKey, raw); err != nil {
		return fmt.Errorf("store allocated ports: %w", err)
	}
	return nil
}

// Lock acquires an exclusive file lock on the store, blocking until it is
// acquired or ctx is done. The lock file is intentionally left on disk after
// release to avoid a race where removing it could invalidate a lock
// concurrently acquired by another process.
func (s *SQLiteStore) Lock(ctx context.Context) (func(), error) {
	fl := flock.New(s.lockPath)

	locked, err := fl.TryLockContext(ctx, fileLockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring file lock %s: %w", s.lockPath, err)
	}
	if !locked {
		// TryLockContext should return an error when it fails, but handle
		// the case where it returns (false, nil) unexpectedly.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring file lock %s: %w", s.lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring file lock %s: lock not acquired", s.lockPath)
	}

	return func() {
		// Close releases the lock and the descriptor in one call.
		if err := fl.Close(); err != nil {
			s.log.Debug("failed to release port store lock", "path", s.lockPath, "err", err)
		}
	}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close port store: %w", err)
	}
	return nil
}

package readiness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/giantswarm/launchpad/internal/sentinel"
)

// ErrWaitTimeout is returned when a poll loop's deadline expires before the
// awaited state is reached. Cluster errors from the polled functions are
// surfaced unchanged instead.
const ErrWaitTimeout = sentinel.Error("wait deadline exceeded")

// Sentinel errors for invalid poll configuration.
const (
	// ErrIntervalNotPositive indicates a non-positive poll interval.
	ErrIntervalNotPositive = sentinel.Error("interval must be positive")

	// ErrTimeoutNotPositive indicates a non-positive timeout.
	ErrTimeoutNotPositive = sentinel.Error("timeout must be positive")
)

// StatusFunc reports the workload's current phase. An empty string means the
// workload is absent (no pod scheduled yet).
type StatusFunc func(ctx context.Context) (string, error)

// EndpointFunc reports the instance's public URL. An empty string means the
// endpoint has not been assigned yet.
type EndpointFunc func(ctx context.Context) (string, error)

// Condition reports whether the awaited state has been reached. The attempt
// parameter is 1-based. A non-nil error is fatal and aborts polling.
type Condition func(ctx context.Context, attempt int) (done bool, err error)

// Config configures a poll loop.
type Config struct {
	Interval time.Duration // Poll interval
	Timeout  time.Duration // Overall deadline
	Name     string        // For logging (e.g. the scope key)
	Logger   *slog.Logger  // Optional logger (defaults to slog.Default())
}

// Poll repeatedly evaluates check until it reports done, returns a fatal
// error, or the deadline expires. The deadline case is reported as
// ErrWaitTimeout.
func Poll(ctx context.Context, cfg Config, check Condition) error {
	if cfg.Name == "" {
		return fmt.Errorf("poll: name must not be empty")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("poll %s: %w", cfg.Name, ErrIntervalNotPositive)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("poll %s: %w", cfg.Name, ErrTimeoutNotPositive)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	// attempt needs no synchronization: PollUntilContextTimeout invokes the
	// condition sequentially, never concurrently with itself.
	attempt := 0
	err := wait.PollUntilContextTimeout(ctx, cfg.Interval, cfg.Timeout, true,
		func(pollCtx context.Context) (bool, error) {
			attempt++
			done, err := check(pollCtx, attempt)
			if err != nil {
				return false, err
			}
			if done {
				log.Debug("poll succeeded", "name", cfg.Name, "attempt", attempt)
			}
			return done, nil
		})
	if wait.Interrupted(err) {
		return fmt.Errorf("poll %s after %d attempts: %w", cfg.Name, attempt, ErrWaitTimeout)
	}
	if err != nil {
		return fmt.Errorf("poll %s: %w", cfg.Name, err)
	}
	return nil
}

// Await blocks until the instance is ready: first the workload phase must
// leave the absent/Pending states, then the public endpoint must be
// assigned. It returns the final phase and URL. Each stage is bounded by
// cfg.Timeout independently.
func Await(ctx context.Context, cfg Config, status StatusFunc, endpoint EndpointFunc) (phase, url string, err error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	err = Poll(ctx, cfg, func(pollCtx context.Context, attempt int) (bool, error) {
		phase, err = status(pollCtx)
		if err != nil {
			return false, err
		}
		if phase == "" || phase == "Pending" {
			log.Info("waiting for workload to be ready", "name", cfg.Name, "phase", phase, "attempt", attempt)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("workload readiness: %w", err)
	}

	err = Poll(ctx, cfg, func(pollCtx context.Context, attempt int) (bool, error) {
		url, err = endpoint(pollCtx)
		if err != nil {
			return false, err
		}
		if url == "" {
			log.Info("waiting for public endpoint assignment", "name", cfg.Name, "attempt", attempt)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("endpoint assignment: %w", err)
	}

	return phase, url, nil
}

package launchpad

import (
	"fmt"
	"io/fs"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("launchpad: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("launchpad: %s must not be empty", name))
	}
}

// Option configures a Launcher during construction via New.
// Each With* function returns an Option that sets a specific field.
//
// Several With* functions panic on invalid input (inverted port ranges,
// empty paths, non-positive durations). These panics are intentional: option
// values are typically compile-time constants or package-level variables, so
// an invalid value indicates a programmer error rather than a runtime
// condition. The pattern mirrors [regexp.MustCompile] — fail fast during
// initialization instead of returning errors that would be universally fatal
// anyway.
type Option func(*launcherConfig)

// WithPortRange sets the inclusive public port range [min, max] services are
// assigned from. Every process sharing a state file must be configured with
// the same range.
//
// Default: [9000, 65535].
//
// Panics if the range is not a valid, non-inverted port range.
func WithPortRange(min, max int) Option {
	if min < 1 || max > 65535 || min > max {
		panic(fmt.Sprintf("launchpad: invalid port range [%d, %d]", min, max))
	}
	return func(c *launcherConfig) {
		c.PortMin = min
		c.PortMax = max
	}
}

// WithPortAttempts sets the number of random draws per port allocation
// before the pool is reported exhausted.
//
// Default: 20.
//
// Panics if n <= 0.
func WithPortAttempts(n int) Option {
	requirePositive("port attempts", n)
	return func(c *launcherConfig) {
		c.PortAttempts = n
	}
}

// WithPollInterval sets the sleep between readiness polls.
//
// Default: 300ms.
//
// Panics if d <= 0.
func WithPollInterval(d time.Duration) Option {
	requirePositive("poll interval", d)
	return func(c *launcherConfig) {
		c.PollInterval = d
	}
}

// WithReadinessTimeout sets the bound on each readiness stage: first the
// workload leaving the pending states, then the endpoint being assigned.
// Each stage gets the full timeout.
//
// Default: 10 minutes.
//
// Panics if d <= 0.
func WithReadinessTimeout(d time.Duration) Option {
	requirePositive("readiness timeout", d)
	return func(c *launcherConfig) {
		c.ReadinessTimeout = d
	}
}

// WithUninstallPollInterval sets the sleep between polls while waiting for
// an instance's namespace to terminate.
//
// Default: 1 second.
//
// Panics if d <= 0.
func WithUninstallPollInterval(d time.Duration) Option {
	requirePositive("uninstall poll interval", d)
	return func(c *launcherConfig) {
		c.UninstallPollInterval = d
	}
}

// WithUninstallTimeout sets the bound on the wait for namespace termination
// during Uninstall with waitUntilUninstalled.
//
// Default: 5 minutes.
//
// Panics if d <= 0.
func WithUninstallTimeout(d time.Duration) Option {
	requirePositive("uninstall timeout", d)
	return func(c *launcherConfig) {
		c.UninstallTimeout = d
	}
}

// WithStatePath sets the path of the SQLite database holding the shared
// allocated-port set, so multiple processes launching onto the same cluster
// draw from one pool. The database and its companion lock file are created
// on first use. Ignored when WithPortStore is also given.
//
// Default: unset (the pool lives in process memory).
//
// Panics if path is empty.
func WithStatePath(path string) Option {
	requireNonEmpty("state path", path)
	return func(c *launcherConfig) {
		c.statePath = path
	}
}

// WithPortStore supplies a custom port store, replacing both the in-memory
// default and any WithStatePath setting. The caller retains ownership:
// Close does not touch a store supplied this way.
//
// Panics if store is nil.
func WithPortStore(store PortStore) Option {
	if store == nil {
		panic("launchpad: port store must not be nil")
	}
	return func(c *launcherConfig) {
		c.store = store
	}
}

// WithCatalog sets the application catalog the launcher resolves names
// against.
//
// Default: DefaultCatalog().
//
// Panics if cat is nil.
func WithCatalog(cat *Catalog) Option {
	if cat == nil {
		panic("launchpad: catalog must not be nil")
	}
	return func(c *launcherConfig) {
		c.catalog = cat
	}
}

// WithManifestSource sets the file system manifest templates are read from.
// The template for an application's resource kind lives at
// <TemplateBase>/<kind>.yaml. When registering custom applications, the
// source must also cover any built-in applications the catalog retains (see
// BuiltinManifests).
//
// Default: the embedded built-in templates.
//
// Panics if fsys is nil.
func WithManifestSource(fsys fs.FS) Option {
	if fsys == nil {
		panic("launchpad: manifest source must not be nil")
	}
	return func(c *launcherConfig) {
		c.manifests = fsys
	}
}

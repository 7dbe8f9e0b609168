package launchpad

import "context"

// Launcher drives the lifecycle of per-session application instances.
// Applications are addressed by their catalog name; sessions by the
// caller-supplied session identifier. The (application, session) pair is the
// unit of isolation: every resource of an instance lives in the namespace
// named by its scope key.
//
// A Launcher is safe for concurrent use. Distinct sessions may be launched,
// refreshed and uninstalled simultaneously; the shared port pool serializes
// its own allocations.
type Launcher interface {
	// Launch creates the application's resources for the given session and
	// returns the observed instance details. Launching a session that is
	// already running is idempotent: existing resources are left untouched
	// and no duplicates appear.
	//
	// An empty password selects the application's default credential.
	//
	// When waitForReadiness is set, Launch blocks until the workload is
	// running and the public endpoint is assigned, bounded by the configured
	// readiness timeout; expiry is reported as ErrWaitTimeout.
	//
	// Returns ErrUnknownApp when appName is not in the catalog.
	// Returns ErrPoolExhausted when no public port is available.
	Launch(ctx context.Context, appName, sessionID, password string, waitForReadiness bool) (InstanceDetails, error)

	// Refresh queries the cluster for the instance's current status and URL
	// without waiting. An instance that was never launched yields empty
	// details, not an error.
	//
	// Returns ErrUnknownApp when appName is not in the catalog.
	Refresh(ctx context.Context, appName, sessionID string) (InstanceDetails, error)

	// Uninstall removes the instance by deleting its grouping namespace and
	// releases its public port. An instance that is already gone is the
	// success case. When waitUntilUninstalled is set, Uninstall blocks until
	// the namespace is confirmed deleted, bounded by the configured
	// uninstall timeout.
	//
	// Returns ErrUnknownApp when appName is not in the catalog.
	Uninstall(ctx context.Context, appName, sessionID string, waitUntilUninstalled bool) error

	// UninstallAll uninstalls the application for every given session,
	// processing sessions concurrently. This is the building block for an
	// expiry sweeper: the scheduler decides which sessions are expired,
	// UninstallAll tears them down.
	UninstallAll(ctx context.Context, appName string, sessionIDs []string, waitUntilUninstalled bool) error

	// RefreshAll refreshes instance details for every given session,
	// concurrently, and returns them keyed by session identifier.
	RefreshAll(ctx context.Context, appName string, sessionIDs []string) (map[string]InstanceDetails, error)

	// Close releases resources held by the launcher, such as the shared
	// state database opened via WithStatePath. It does not touch anything
	// on the cluster. Safe to call once; using the launcher after Close is
	// undefined.
	Close() error
}

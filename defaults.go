package launchpad

import "time"

// Default configuration values for New.
// These constants are exported so callers can reference the defaults
// when building custom configurations relative to them (e.g.,
// 2 * DefaultReadinessTimeout).
const (
	// DefaultPortMin is the lower bound of the public port range services
	// are assigned from.
	DefaultPortMin = 9000

	// DefaultPortMax is the upper bound of the public port range.
	DefaultPortMax = 65535

	// DefaultPortAttempts is the number of random draws per port allocation
	// before the pool is reported exhausted. With the default range the
	// pool is effectively never this contended; the bound exists so a
	// misconfigured narrow range fails instead of spinning.
	DefaultPortAttempts = 20

	// DefaultPollInterval is the sleep between readiness polls while
	// waiting for the workload to run and the endpoint to be assigned.
	DefaultPollInterval = 300 * time.Millisecond

	// DefaultReadinessTimeout bounds each readiness stage (workload phase,
	// endpoint assignment). Cloud load balancers commonly take minutes to
	// assign an address.
	DefaultReadinessTimeout = 10 * time.Minute

	// DefaultUninstallPollInterval is the sleep between polls while
	// waiting for an instance's namespace to terminate.
	DefaultUninstallPollInterval = 1 * time.Second

	// DefaultUninstallTimeout bounds the wait for namespace termination.
	// Namespace deletion cascades through every resource inside it and can
	// be slow when finalizers are involved.
	DefaultUninstallTimeout = 5 * time.Minute
)

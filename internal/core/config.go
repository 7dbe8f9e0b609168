package core

import "time"

// Config holds configuration for an Orchestrator.
//
// All fields are immutable after construction; instances read them without
// synchronization.
type Config struct {
	// PortMin and PortMax bound the public port range services are
	// assigned from. Default: 9000-65535.
	PortMin int
	PortMax int

	// PortAttempts bounds the number of random draws per port allocation
	// before the pool is reported exhausted. Default: 20.
	PortAttempts int

	// PollInterval is the sleep between readiness polls. Default: 300ms.
	PollInterval time.Duration

	// ReadinessTimeout bounds each readiness stage (workload phase,
	// endpoint assignment). Default: 10 minutes.
	ReadinessTimeout time.Duration

	// UninstallPollInterval is the sleep between polls while waiting for
	// the grouping namespace to terminate. Default: 1 second.
	UninstallPollInterval time.Duration

	// UninstallTimeout bounds the wait for namespace termination.
	// Default: 5 minutes.
	UninstallTimeout time.Duration
}

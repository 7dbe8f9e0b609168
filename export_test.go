package launchpad

import "time"

// ConfigSnapshot holds a copy of launcherConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	PortMin               int
	PortMax               int
	PortAttempts          int
	PollInterval          time.Duration
	ReadinessTimeout      time.Duration
	UninstallPollInterval time.Duration
	UninstallTimeout      time.Duration
	StatePath             string
	HasPortStore          bool
	HasCatalog            bool
	HasManifestSource     bool
}

// ApplyOptionsForTesting creates a default launcherConfig, applies the given
// options, and returns a ConfigSnapshot of the result. This tests the option
// closures directly without constructing a Launcher.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultLauncherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		PortMin:               cfg.PortMin,
		PortMax:               cfg.PortMax,
		PortAttempts:          cfg.PortAttempts,
		PollInterval:          cfg.PollInterval,
		ReadinessTimeout:      cfg.ReadinessTimeout,
		UninstallPollInterval: cfg.UninstallPollInterval,
		UninstallTimeout:      cfg.UninstallTimeout,
		StatePath:             cfg.statePath,
		HasPortStore:          cfg.store != nil,
		HasCatalog:            cfg.catalog != nil,
		HasManifestSource:     cfg.manifests != nil,
	}
}

package launchpad

import (
	"io/fs"

	"github.com/giantswarm/launchpad/internal/core"
	"github.com/giantswarm/launchpad/internal/portpool"
)

// launcherConfig holds configuration for a Launcher. The unexported type
// embeds core.Config, keeping internal/core types out of the public API
// signature while avoiding field-by-field duplication.
type launcherConfig struct {
	core.Config

	// catalog is the application registry; nil selects DefaultCatalog().
	catalog *Catalog

	// store is an explicitly supplied port store. Takes precedence over
	// statePath.
	store portpool.Store

	// statePath, when set, selects a SQLite-backed port store at this path
	// so the pool is shared across processes.
	statePath string

	// manifests is the manifest template source; nil selects the embedded
	// built-in templates.
	manifests fs.FS
}

// defaultLauncherConfig returns the configuration New starts from before
// options are applied.
func defaultLauncherConfig() launcherConfig {
	return launcherConfig{
		Config: core.Config{
			PortMin:               DefaultPortMin,
			PortMax:               DefaultPortMax,
			PortAttempts:          DefaultPortAttempts,
			PollInterval:          DefaultPollInterval,
			ReadinessTimeout:      DefaultReadinessTimeout,
			UninstallPollInterval: DefaultUninstallPollInterval,
			UninstallTimeout:      DefaultUninstallTimeout,
		},
	}
}

// toCoreConfig returns the embedded core.Config.
func (c launcherConfig) toCoreConfig() core.Config {
	return c.Config
}

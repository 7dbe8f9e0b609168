package launchpad

import (
	"context"
	"fmt"
	"io"

	"k8s.io/client-go/kubernetes"

	"github.com/giantswarm/launchpad/internal/core"
	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/portpool"
	"github.com/giantswarm/launchpad/internal/provision"
)

// Compile-time check: launcher satisfies the public interface.
var _ Launcher = (*launcher)(nil)

// New creates a Launcher operating on the cluster behind client.
//
// Without options, instances are resolved against DefaultCatalog(), rendered
// from the embedded manifest templates, and assigned ports from an in-memory
// pool spanning [DefaultPortMin, DefaultPortMax]. See the With* options for
// shared state, custom catalogs and tuning.
//
// ctx bounds the construction work itself (opening the state database);
// it is not retained.
//
// Panics if client is nil.
func New(ctx context.Context, client kubernetes.Interface, opts ...Option) (Launcher, error) {
	if client == nil {
		panic("launchpad: New client must not be nil")
	}

	cfg := defaultLauncherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cat := cfg.catalog
	if cat == nil {
		cat = DefaultCatalog()
	}
	manifests := cfg.manifests
	if manifests == nil {
		manifests = BuiltinManifests()
	}

	log := core.Logger()

	store := cfg.store
	var closer io.Closer
	if store == nil {
		if cfg.statePath != "" {
			s, err := portpool.NewSQLiteStore(ctx, cfg.statePath, log)
			if err != nil {
				return nil, fmt.Errorf("open state at %s: %w", cfg.statePath, err)
			}
			store = s
			closer = s
		} else {
			store = portpool.NewMemoryStore()
		}
	}

	orch := core.NewOrchestrator(
		provision.New(client, log),
		manifest.NewResolver(manifest.NewFSStore(manifests)),
		portpool.NewAllocator(store, cfg.PortMin, cfg.PortMax, cfg.PortAttempts, log),
		cfg.toCoreConfig(),
		log,
	)

	return &launcher{
		catalog: cat,
		orch:    orch,
		closer:  closer,
	}, nil
}

// launcher is the concrete Launcher. It resolves application names against
// the catalog and delegates lifecycle work to the orchestrator.
type launcher struct {
	catalog *Catalog
	orch    *core.Orchestrator

	// closer releases the state store when the launcher owns it; nil for
	// the in-memory default and caller-supplied stores.
	closer io.Closer
}

// definition resolves an application name against the catalog.
func (l *launcher) definition(appName string) (*AppDefinition, error) {
	def := l.catalog.Definition(appName)
	if def == nil {
		return nil, fmt.Errorf("application %q: %w", appName, ErrUnknownApp)
	}
	return def, nil
}

func (l *launcher) Launch(ctx context.Context, appName, sessionID, password string, waitForReadiness bool) (InstanceDetails, error) {
	def, err := l.definition(appName)
	if err != nil {
		return InstanceDetails{}, err
	}
	return l.orch.Launch(ctx, def, sessionID, password, waitForReadiness)
}

func (l *launcher) Refresh(ctx context.Context, appName, sessionID string) (InstanceDetails, error) {
	def, err := l.definition(appName)
	if err != nil {
		return InstanceDetails{}, err
	}
	return l.orch.Refresh(ctx, def, sessionID)
}

func (l *launcher) Uninstall(ctx context.Context, appName, sessionID string, waitUntilUninstalled bool) error {
	def, err := l.definition(appName)
	if err != nil {
		return err
	}
	return l.orch.Uninstall(ctx, def, sessionID, waitUntilUninstalled)
}

func (l *launcher) UninstallAll(ctx context.Context, appName string, sessionIDs []string, waitUntilUninstalled bool) error {
	def, err := l.definition(appName)
	if err != nil {
		return err
	}
	return l.orch.UninstallAll(ctx, def, sessionIDs, waitUntilUninstalled)
}

func (l *launcher) RefreshAll(ctx context.Context, appName string, sessionIDs []string) (map[string]InstanceDetails, error) {
	def, err := l.definition(appName)
	if err != nil {
		return nil, err
	}
	return l.orch.RefreshAll(ctx, def, sessionIDs)
}

func (l *launcher) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/portpool"
	"github.com/giantswarm/launchpad/internal/provision"
	"github.com/giantswarm/launchpad/internal/readiness"
)

// Orchestrator drives the full lifecycle of application instances: ordered
// resource creation with hooks, readiness tracking, and uninstall with
// wait-for-termination. The provisioner, resolver and port allocator are
// injected at construction so tests can substitute fakes; the orchestrator
// never reaches for globals.
//
// It is safe for concurrent use: distinct sessions may be launched and
// uninstalled simultaneously. Shared mutable state is confined to the port
// allocator.
type Orchestrator struct {
	cfg      Config
	prov     *provision.Provisioner
	resolver *manifest.Resolver
	ports    *portpool.Allocator
	log      *slog.Logger
}

// NewOrchestrator creates an Orchestrator from its collaborators.
// If logger is nil, the package logger is used.
// Panics if any collaborator is nil; wiring them is a construction-time
// programmer responsibility.
func NewOrchestrator(prov *provision.Provisioner, resolver *manifest.Resolver, ports *portpool.Allocator, cfg Config, logger *slog.Logger) *Orchestrator {
	if prov == nil {
		panic("launchpad: NewOrchestrator provisioner must not be nil")
	}
	if resolver == nil {
		panic("launchpad: NewOrchestrator resolver must not be nil")
	}
	if ports == nil {
		panic("launchpad: NewOrchestrator port allocator must not be nil")
	}
	if logger == nil {
		logger = Logger()
	}
	return &Orchestrator{
		cfg:      cfg,
		prov:     prov,
		resolver: resolver,
		ports:    ports,
		log:      logger,
	}
}

// Launch drives the definition's creation sequence for one session and
// returns the observed instance details. Re-launching an existing
// (application, session) pair is idempotent: every create resolves through
// the already-exists path and no duplicate resources appear.
//
// A create failure other than "already exists" aborts the sequence and
// surfaces the failure. No partial-resource rollback is performed: the
// namespace-scoped grouping means a later uninstall removes any stragglers.
// A port drawn during the failed attempt is released before returning —
// unless the service carrying it was already created, in which case the
// port belongs to a live endpoint and stays allocated until uninstall.
//
// When waitForReadiness is set, Launch blocks until the workload leaves the
// pending states and the public endpoint is assigned, bounded by the
// configured readiness timeout.
func (o *Orchestrator) Launch(ctx context.Context, def *Definition, sessionID, password string, waitForReadiness bool) (Details, error) {
	if password == "" {
		password = def.DefaultPassword
	}
	inst := &Instance{
		def:      def,
		session:  sessionID,
		password: password,
		orch:     o,
	}

	o.log.Info("launching application", "app", def.Name, "scope", inst.Scope())

	for _, kind := range def.LaunchKinds {
		if err := inst.Create(ctx, kind); err != nil {
			o.releaseAbandonedPort(inst)
			return Details{}, fmt.Errorf("launch %s: %w", inst.Scope(), err)
		}
	}

	details, err := o.observe(ctx, inst.Scope(), def.Name, waitForReadiness)
	if err != nil {
		o.releaseAbandonedPort(inst)
		return Details{}, fmt.Errorf("launch %s: %w", inst.Scope(), err)
	}
	return details, nil
}

// Refresh queries the cluster for the instance's current status and URL
// without waiting for readiness.
func (o *Orchestrator) Refresh(ctx context.Context, def *Definition, sessionID string) (Details, error) {
	return o.observe(ctx, Scope(def.Name, sessionID), def.Name, false)
}

// Uninstall tears the instance down. It first refreshes the instance
// details to recover the allocated port from the observed URL (the port is
// not tracked separately), then deletes the grouping namespace — cascading
// to every resource beneath it. A namespace that is already absent is the
// success case. When waitUntilUninstalled is set, Uninstall polls until the
// namespace is confirmed gone, bounded by the configured uninstall timeout.
// On completion the recovered port is released back to the pool.
func (o *Orchestrator) Uninstall(ctx context.Context, def *Definition, sessionID string, waitUntilUninstalled bool) error {
	scope := Scope(def.Name, sessionID)

	// Recover the in-use port before the service disappears.
	details, err := o.observe(ctx, scope, def.Name, false)
	if err != nil {
		return fmt.Errorf("uninstall %s: %w", scope, err)
	}
	port := portFromURL(details.URL)

	err = o.prov.Delete(ctx, provision.Namespace, scope)
	if errors.Is(err, provision.ErrNotFound) {
		o.log.Info("no such app", "scope", scope)
		return nil
	}
	if err != nil {
		return fmt.Errorf("uninstall %s: %w", scope, err)
	}

	if waitUntilUninstalled {
		if err := o.awaitTermination(ctx, scope); err != nil {
			return fmt.Errorf("uninstall %s: %w", scope, err)
		}
		o.log.Info("uninstalled successfully", "scope", scope)
	} else {
		o.log.Info("uninstall started", "scope", scope)
	}

	if port != 0 {
		if err := o.ports.Release(ctx, port); err != nil {
			return fmt.Errorf("uninstall %s: release port %d: %w", scope, port, err)
		}
	}
	return nil
}

// observe builds a Details record from the cluster, optionally blocking
// until the instance is ready first.
func (o *Orchestrator) observe(ctx context.Context, scope, appName string, waitForReadiness bool) (Details, error) {
	status := func(ctx context.Context) (string, error) {
		return o.prov.WorkloadPhase(ctx, scope)
	}
	endpoint := func(ctx context.Context) (string, error) {
		return o.prov.EndpointURL(ctx, scope)
	}

	if waitForReadiness {
		cfg := readiness.Config{
			Interval: o.cfg.PollInterval,
			Timeout:  o.cfg.ReadinessTimeout,
			Name:     appName,
			Logger:   o.log,
		}
		phase, url, err := readiness.Await(ctx, cfg, status, endpoint)
		if err != nil {
			return Details{}, err
		}
		return Details{Status: phase, URL: url, LastCheckedAt: time.Now()}, nil
	}

	phase, err := status(ctx)
	if err != nil {
		return Details{}, err
	}
	url, err := endpoint(ctx)
	if err != nil {
		return Details{}, err
	}
	return Details{Status: phase, URL: url, LastCheckedAt: time.Now()}, nil
}

// awaitTermination polls the grouping namespace until the cluster reports
// it gone.
func (o *Orchestrator) awaitTermination(ctx context.Context, scope string) error {
	cfg := readiness.Config{
		Interval: o.cfg.UninstallPollInterval,
		Timeout:  o.cfg.UninstallTimeout,
		Name:     scope,
		Logger:   o.log,
	}
	return readiness.Poll(ctx, cfg, func(pollCtx context.Context, attempt int) (bool, error) {
		_, err := o.prov.Read(pollCtx, provision.Namespace, scope)
		if errors.Is(err, provision.ErrNotFound) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		o.log.Info("waiting for namespace to terminate", "scope", scope, "attempt", attempt)
		return false, nil
	})
}

// releaseAbandonedPort returns an instance's port to the pool after a failed
// launch, but only while no service holds it: once the service create went
// through, the port is reachable on the cluster and handing it to another
// session would put two live services on one public port. The failure
// already aborts the operation; a release failure is only logged so it
// cannot mask the original error.
func (o *Orchestrator) releaseAbandonedPort(inst *Instance) {
	if inst.port == 0 || inst.portCommitted {
		return
	}
	// The launch context may already be canceled; release must still run.
	if err := o.ports.Release(context.Background(), inst.port); err != nil {
		o.log.Warn("failed to release port after aborted launch", "port", inst.port, "error", err)
	}
}

// portFromURL recovers the service port from an observed instance URL
// ("http://<host>:<port>"). Returns 0 when the URL is empty or carries no
// port.
func portFromURL(url string) int {
	idx := strings.LastIndex(url, ":")
	if idx < 0 {
		return 0
	}
	port, err := strconv.Atoi(url[idx+1:])
	if err != nil {
		return 0
	}
	return port
}

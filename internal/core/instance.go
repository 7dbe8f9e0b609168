package core

import (
	"context"
	"fmt"

	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/provision"
)

// Instance is the per-launch state threaded through the creation sequence,
// its hooks and its transforms. An Instance lives for the duration of one
// orchestrator operation; nothing outside the orchestrator's lifecycle
// methods mutates it.
//
// An Instance is used from a single goroutine: each instance's sequence is
// strictly ordered end to end. Concurrency exists only between instances.
type Instance struct {
	def      *Definition
	session  string
	password string

	// port is the service port allocated for this instance, 0 until the
	// Service manifest resolution allocates one. Guarding against repeat
	// allocation keeps the sanctioned transform side effect at-most-once.
	port int

	// portCommitted is set once the service carrying port exists on the
	// cluster. A committed port belongs to a live service and must never
	// go back to the pool until that service is uninstalled.
	portCommitted bool

	orch *Orchestrator
}

// Scope returns the instance's scope key ("<appName>-<sessionID>").
func (i *Instance) Scope() string {
	return Scope(i.def.Name, i.session)
}

// Session returns the session identifier this instance belongs to.
func (i *Instance) Session() string {
	return i.session
}

// Password returns the instance credential (the launch override or the
// definition default), unencoded.
func (i *Instance) Password() string {
	return i.password
}

// AllocatePort draws the instance's public port from the shared pool. The
// first call allocates; subsequent calls return the same port, so resolving
// the Service manifest can never allocate twice for one instance.
func (i *Instance) AllocatePort(ctx context.Context) (int, error) {
	if i.port != 0 {
		return i.port, nil
	}
	port, err := i.orch.ports.Allocate(ctx)
	if err != nil {
		return 0, err
	}
	i.port = port
	return port, nil
}

// Create provisions one resource kind for this instance: the kind's
// pre-hook, then the resolved manifest's create call, then the post-hook.
// Both hooks run even when the create call is a no-op because the resource
// already exists. A cluster failure other than "already exists" aborts and
// propagates.
func (i *Instance) Create(ctx context.Context, kind provision.Kind) error {
	if !i.def.usesKind(kind) {
		return fmt.Errorf("create %s: %w: kind not in %q definition", kind, provision.ErrUnknownKind, i.def.Name)
	}

	hook := i.def.Hooks[kind]
	if hook.Pre != nil {
		if err := hook.Pre(ctx, i); err != nil {
			return fmt.Errorf("%s pre-create hook: %w", kind, err)
		}
	}

	m, err := i.resolveManifest(ctx, kind)
	if err != nil {
		return err
	}

	result, err := i.orch.prov.Create(ctx, kind, m.Raw, i.Scope())
	if err != nil {
		return err
	}
	if result.AlreadyExisted {
		i.orch.log.Info("resource already present", "kind", kind.String(), "scope", i.Scope())
		// A re-launch resolves the service manifest with a freshly drawn
		// port, but the pre-existing service keeps its original one. The
		// unsubmitted draw goes back to the pool.
		if kind == provision.Service && i.port != 0 {
			if err := i.orch.ports.Release(ctx, i.port); err != nil {
				i.orch.log.Warn("failed to release unused port", "port", i.port, "error", err)
			}
			i.port = 0
		}
	} else if kind == provision.Service && i.port != 0 {
		i.portCommitted = true
	}

	if hook.Post != nil {
		if err := hook.Post(ctx, i); err != nil {
			return fmt.Errorf("%s post-create hook: %w", kind, err)
		}
	}
	return nil
}

// resolveManifest renders the kind's template with the default substitution
// values, routed through the definition's transform for the kind when one
// is registered.
func (i *Instance) resolveManifest(ctx context.Context, kind provision.Kind) (manifest.Manifest, error) {
	vars := manifest.Vars{
		Name:      i.def.Name,
		Namespace: i.Scope(),
	}

	var transform manifest.Transform
	if t, ok := i.def.Transforms[kind]; ok {
		transform = func(ctx context.Context, vars *manifest.Vars) error {
			return t(ctx, i, vars)
		}
	}

	return i.orch.resolver.Resolve(ctx, i.def.TemplateBase, kind, vars, transform)
}

package core

import (
	"context"
	"fmt"

	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/provision"
	"github.com/giantswarm/launchpad/internal/sentinel"
)

// ErrInvalidDefinition is returned when an application definition fails
// validation at registration time.
const ErrInvalidDefinition = sentinel.Error("invalid application definition")

// HookFunc is an optional per-kind callback run immediately before or after
// that kind's create call. Hooks receive the live instance and typically
// create supporting resources through Instance.Create (e.g. the workload's
// pre-hook creates the namespace, secret and volume claim it depends on).
type HookFunc func(ctx context.Context, inst *Instance) error

// Hook bundles a kind's pre- and post-create callbacks. Either may be nil.
// Both run even when the create call itself was a no-op because the
// resource already existed.
type Hook struct {
	Pre  HookFunc
	Post HookFunc
}

// TransformFunc customizes the substitution values for one kind's manifest.
// Transforms must be pure, with one sanctioned exception: the Service
// transform allocates the instance's port via Instance.AllocatePort, which
// allocates at most once per instance.
type TransformFunc func(ctx context.Context, inst *Instance, vars *manifest.Vars) error

// Definition describes how one application type is orchestrated: which
// resource kinds it uses, in what order the launch sequence creates them,
// and the per-kind hooks and manifest transforms. Hook and transform
// dispatch is explicit table lookup; an absent entry means "use default".
//
// A Definition is immutable after registration and shared by every instance
// of the application.
type Definition struct {
	// Name is the application name. It names the resources inside the
	// instance namespace and prefixes the scope key.
	Name string

	// TemplateBase is the key under which the template store holds this
	// application's per-kind manifest templates.
	TemplateBase string

	// Kinds is the set of resource kinds this application uses. Create
	// calls for kinds outside this set are rejected.
	Kinds []provision.Kind

	// LaunchKinds is the ordered sequence of kinds the launch sequence
	// drives directly. Kinds created from hooks (e.g. the namespace from
	// the workload's pre-hook) are not listed here.
	LaunchKinds []provision.Kind

	// Hooks maps a kind to its pre/post create callbacks.
	Hooks map[provision.Kind]Hook

	// Transforms maps a kind to its manifest transform. Kinds without an
	// entry get the default substitution (application name and scope key
	// only).
	Transforms map[provision.Kind]TransformFunc

	// DefaultPassword is the credential used when the caller supplies none.
	DefaultPassword string
}

// Validate checks the definition for structural problems. It is called once
// at catalog registration, so launches never operate on a malformed
// definition.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidDefinition)
	}
	if d.TemplateBase == "" {
		return fmt.Errorf("%w: template base must not be empty", ErrInvalidDefinition)
	}
	if len(d.Kinds) == 0 {
		return fmt.Errorf("%w: kind set must not be empty", ErrInvalidDefinition)
	}
	if len(d.LaunchKinds) == 0 {
		return fmt.Errorf("%w: launch sequence must not be empty", ErrInvalidDefinition)
	}

	valid := make(map[provision.Kind]struct{}, len(d.Kinds))
	for _, k := range d.Kinds {
		if !k.IsValid() {
			return fmt.Errorf("%w: unknown kind %q", ErrInvalidDefinition, k)
		}
		valid[k] = struct{}{}
	}
	for _, k := range d.LaunchKinds {
		if _, ok := valid[k]; !ok {
			return fmt.Errorf("%w: launch sequence kind %q not in kind set", ErrInvalidDefinition, k)
		}
	}
	for k := range d.Hooks {
		if _, ok := valid[k]; !ok {
			return fmt.Errorf("%w: hook for kind %q not in kind set", ErrInvalidDefinition, k)
		}
	}
	for k := range d.Transforms {
		if _, ok := valid[k]; !ok {
			return fmt.Errorf("%w: transform for kind %q not in kind set", ErrInvalidDefinition, k)
		}
	}
	return nil
}

// usesKind reports whether k is in the definition's kind set.
func (d *Definition) usesKind(k provision.Kind) bool {
	for _, kind := range d.Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Scope returns the deterministic scope key addressing every resource of
// one application instance: "<appName>-<sessionID>". It is derived on
// demand and never persisted.
func Scope(appName, sessionID string) string {
	return appName + "-" + sessionID
}

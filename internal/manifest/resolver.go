package manifest

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/giantswarm/launchpad/internal/provision"
)

// Vars holds the substitution values rendered into a template. The default
// substitution fills only Name; a kind's Transform populates the rest
// (e.g. the Secret credential or the Service port).
type Vars struct {
	// Name is the application name, used as the resource name.
	Name string

	// Namespace is the instance's scope key. Only the Namespace kind's
	// template names itself after it; namespaced resources are placed
	// into it by the provisioner.
	Namespace string

	// Password is the base64-encoded credential for the Secret kind.
	Password string

	// Port is the allocated public port for the Service kind.
	Port int
}

// Transform adjusts the substitution values for one kind before rendering.
// Transforms must be free of side effects, with one sanctioned exception:
// the Service transform allocates the instance's port, at most once per
// instance.
type Transform func(ctx context.Context, vars *Vars) error

// Manifest is a fully resolved, ready-to-submit resource description.
// The payload is opaque at this layer; the provisioner decodes it.
type Manifest struct {
	Kind provision.Kind
	Raw  []byte
}

// Resolver renders resource templates into manifests.
type Resolver struct {
	store TemplateStore
}

// NewResolver creates a Resolver reading templates from store.
// Panics if store is nil.
func NewResolver(store TemplateStore) *Resolver {
	if store == nil {
		panic("launchpad: NewResolver store must not be nil")
	}
	return &Resolver{store: store}
}

// Resolve loads the template for (base, kind), applies the kind's transform
// to vars when one is supplied, and renders the result. Rendering is strict:
// a template referencing a value the transform did not populate fails
// instead of producing an empty field.
func (r *Resolver) Resolve(ctx context.Context, base string, kind provision.Kind, vars Vars, transform Transform) (Manifest, error) {
	raw, err := r.store.Template(base, kind)
	if err != nil {
		return Manifest{}, err
	}

	if transform != nil {
		if err := transform(ctx, &vars); err != nil {
			return Manifest{}, fmt.Errorf("transform %s manifest: %w", kind, err)
		}
	}

	tmpl, err := template.New(kind.String()).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return Manifest{}, fmt.Errorf("parse %s template: %w", kind, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return Manifest{}, fmt.Errorf("render %s template: %w", kind, err)
	}

	return Manifest{Kind: kind, Raw: buf.Bytes()}, nil
}

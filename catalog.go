package launchpad

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/giantswarm/launchpad/internal/catalog"
	"github.com/giantswarm/launchpad/internal/core"
	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/portpool"
	"github.com/giantswarm/launchpad/internal/provision"
)

// Type aliases re-exporting the internal orchestration types so callers can
// define their own applications without importing internal packages.
type (
	// AppDefinition describes how one application type is orchestrated:
	// its resource kinds, launch sequence, hooks and manifest transforms.
	AppDefinition = core.Definition

	// InstanceDetails is the caller-facing observation of one instance:
	// workload status, public URL, and when the cluster was last queried.
	InstanceDetails = core.Details

	// Hook bundles a resource kind's pre- and post-create callbacks.
	Hook = core.Hook

	// HookFunc is a per-kind callback run before or after that kind's
	// create call.
	HookFunc = core.HookFunc

	// TransformFunc customizes the substitution values for one kind's
	// manifest before rendering.
	TransformFunc = core.TransformFunc

	// Instance is the per-launch state passed to hooks and transforms.
	Instance = core.Instance

	// TemplateVars holds the substitution values rendered into a manifest
	// template.
	TemplateVars = manifest.Vars

	// Kind identifies one of the resource kinds an application may use.
	Kind = provision.Kind

	// PortStore persists the shared allocated-port set. Implement it to
	// back the pool with custom storage via WithPortStore; the built-in
	// choices are process memory and the SQLite file behind WithStatePath.
	PortStore = portpool.Store
)

// Resource kinds available to application definitions.
const (
	KindNamespace             = provision.Namespace
	KindSecret                = provision.Secret
	KindPersistentVolumeClaim = provision.PersistentVolumeClaim
	KindDeployment            = provision.Deployment
	KindService               = provision.Service
)

// CodeServerName is the catalog name of the built-in browser IDE.
const CodeServerName = catalog.CodeServerName

// ScopeKey returns the deterministic namespace name addressing every
// resource of one application instance: "<appName>-<sessionID>".
func ScopeKey(appName, sessionID string) string {
	return core.Scope(appName, sessionID)
}

// BuiltinManifests returns the embedded manifest templates for the built-in
// applications. It is the default manifest source; callers registering their
// own applications supply a source covering both via WithManifestSource.
func BuiltinManifests() fs.FS {
	return catalog.Manifests()
}

// Catalog is the registry of launchable application definitions, keyed by
// application name. Definitions are validated at registration, so launches
// never operate on a malformed definition.
//
// A Catalog is safe for concurrent use.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]*AppDefinition
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]*AppDefinition)}
}

// DefaultCatalog returns a catalog pre-registered with the built-in
// applications (currently code-server).
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	if err := c.Register(catalog.CodeServer()); err != nil {
		// The built-in definitions are maintained alongside Validate; a
		// registration failure here is a bug in the package itself.
		panic(fmt.Sprintf("launchpad: built-in definition rejected: %v", err))
	}
	return c
}

// Register validates def and adds it to the catalog. Returns
// ErrInvalidDefinition when validation fails and ErrAlreadyRegistered when a
// definition with the same name is present.
func (c *Catalog) Register(def *AppDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.defs[def.Name]; ok {
		return fmt.Errorf("application %q: %w", def.Name, ErrAlreadyRegistered)
	}
	c.defs[def.Name] = def
	return nil
}

// Definition returns the registered definition for name, or nil when none
// exists.
func (c *Catalog) Definition(name string) *AppDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defs[name]
}

// Names returns the registered application names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

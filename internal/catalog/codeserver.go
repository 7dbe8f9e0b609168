package catalog

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"io/fs"

	"github.com/giantswarm/launchpad/internal/core"
	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/provision"
)

//go:embed manifests
var manifestsFS embed.FS

// CodeServerName is the application name of the built-in browser IDE.
const CodeServerName = "code-server"

// DefaultCodeServerPassword is the credential used when a launch supplies
// none.
const DefaultCodeServerPassword = "admin"

// Manifests returns the file system holding the built-in applications'
// manifest templates, rooted so that an application's TemplateBase resolves
// directly (e.g. "code-server/service.yaml").
func Manifests() fs.FS {
	sub, err := fs.Sub(manifestsFS, "manifests")
	if err != nil {
		// The manifests directory is embedded at compile time; failing to
		// root it means the binary itself is broken.
		panic(fmt.Sprintf("launchpad: embedded manifests missing: %v", err))
	}
	return sub
}

// CodeServer returns the orchestration definition for the browser IDE.
//
// The launch sequence drives only the workload: the deployment's pre-hook
// creates the namespace, secret and volume claim it depends on, and its
// post-hook exposes the instance by creating the service. The observed
// create order for a fresh instance is therefore namespace, secret, pvc,
// deployment, service.
func CodeServer() *core.Definition {
	return &core.Definition{
		Name:         CodeServerName,
		TemplateBase: CodeServerName,
		Kinds:        provision.All(),
		LaunchKinds:  []provision.Kind{provision.Deployment},
		Hooks: map[provision.Kind]core.Hook{
			provision.Deployment: {
				Pre:  createWorkloadDependencies,
				Post: exposeWorkload,
			},
		},
		Transforms: map[provision.Kind]core.TransformFunc{
			provision.Secret:  secretTransform,
			provision.Service: serviceTransform,
		},
		DefaultPassword: DefaultCodeServerPassword,
	}
}

// createWorkloadDependencies creates the resources that need to be there
// before the deployment goes off.
func createWorkloadDependencies(ctx context.Context, inst *core.Instance) error {
	for _, kind := range []provision.Kind{provision.Namespace, provision.Secret, provision.PersistentVolumeClaim} {
		if err := inst.Create(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// exposeWorkload creates the service after the deployment is in place,
// making the instance publicly reachable.
func exposeWorkload(ctx context.Context, inst *core.Instance) error {
	return inst.Create(ctx, provision.Service)
}

// secretTransform fills in the base64-encoded instance credential.
func secretTransform(_ context.Context, inst *core.Instance, vars *manifest.Vars) error {
	vars.Password = base64.StdEncoding.EncodeToString([]byte(inst.Password()))
	return nil
}

// serviceTransform assigns the instance's public port. AllocatePort caches
// the first allocation, so re-resolving the service manifest never draws a
// second port.
func serviceTransform(ctx context.Context, inst *core.Instance, vars *manifest.Vars) error {
	port, err := inst.AllocatePort(ctx)
	if err != nil {
		return err
	}
	vars.Port = port
	return nil
}

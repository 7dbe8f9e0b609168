package manifest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/provision"
)

func testStore() manifest.TemplateStore {
	return manifest.NewFSStore(fstest.MapFS{
		"code-server/namespace.yaml": &fstest.MapFile{Data: []byte(
			"apiVersion: v1\nkind: Namespace\nmetadata:\n  name: {{ .Namespace }}\n",
		)},
		"code-server/deployment.yaml": &fstest.MapFile{Data: []byte(
			"apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: {{ .Name }}\n",
		)},
		"code-server/service.yaml": &fstest.MapFile{Data: []byte(
			"apiVersion: v1\nkind: Service\nmetadata:\n  name: {{ .Name }}\nspec:\n  ports:\n    - port: {{ .Port }}\n",
		)},
	})
}

func TestResolveDefaultSubstitution(t *testing.T) {
	t.Parallel()

	r := manifest.NewResolver(testStore())

	m, err := r.Resolve(context.Background(), "code-server", provision.Deployment, manifest.Vars{Name: "code-server"}, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if m.Kind != provision.Deployment {
		t.Errorf("Manifest.Kind = %q, want %q", m.Kind, provision.Deployment)
	}
	if !strings.Contains(string(m.Raw), "name: code-server") {
		t.Errorf("rendered manifest missing substituted name:\n%s", m.Raw)
	}
}

func TestResolveAppliesTransform(t *testing.T) {
	t.Parallel()

	r := manifest.NewResolver(testStore())

	transform := func(_ context.Context, vars *manifest.Vars) error {
		vars.Port = 9123
		return nil
	}
	m, err := r.Resolve(context.Background(), "code-server", provision.Service, manifest.Vars{Name: "code-server"}, transform)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !strings.Contains(string(m.Raw), "port: 9123") {
		t.Errorf("rendered manifest missing transformed port:\n%s", m.Raw)
	}
}

func TestResolveTransformError(t *testing.T) {
	t.Parallel()

	r := manifest.NewResolver(testStore())

	transformErr := errors.New("no port available")
	transform := func(_ context.Context, _ *manifest.Vars) error {
		return transformErr
	}
	_, err := r.Resolve(context.Background(), "code-server", provision.Service, manifest.Vars{}, transform)
	if !errors.Is(err, transformErr) {
		t.Errorf("Resolve error = %v, want wrapped transform error", err)
	}
}

func TestResolveMissingTemplate(t *testing.T) {
	t.Parallel()

	r := manifest.NewResolver(testStore())

	_, err := r.Resolve(context.Background(), "code-server", provision.Secret, manifest.Vars{}, nil)
	if !errors.Is(err, manifest.ErrManifestNotFound) {
		t.Errorf("Resolve for absent template error = %v, want ErrManifestNotFound", err)
	}
}

func TestResolveUnknownBasePath(t *testing.T) {
	t.Parallel()

	r := manifest.NewResolver(testStore())

	_, err := r.Resolve(context.Background(), "no-such-app", provision.Namespace, manifest.Vars{}, nil)
	if !errors.Is(err, manifest.ErrManifestNotFound) {
		t.Errorf("Resolve for unknown base error = %v, want ErrManifestNotFound", err)
	}
}

package provision_test

import (
	"testing"

	"github.com/giantswarm/launchpad/internal/provision"
)

func TestAllContainsEveryKindOnce(t *testing.T) {
	t.Parallel()

	kinds := provision.All()
	if len(kinds) != 5 {
		t.Fatalf("All() returned %d kinds, want 5", len(kinds))
	}

	seen := make(map[provision.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		if !k.IsValid() {
			t.Errorf("All() contains invalid kind %q", k)
		}
		if _, dup := seen[k]; dup {
			t.Errorf("All() contains duplicate kind %q", k)
		}
		seen[k] = struct{}{}
	}
}

func TestKindIsValid(t *testing.T) {
	t.Parallel()

	if provision.Kind("daemonset").IsValid() {
		t.Error(`Kind("daemonset").IsValid() = true, want false`)
	}
	if !provision.Deployment.IsValid() {
		t.Error("Deployment.IsValid() = false, want true")
	}
}

func TestKindNamespaced(t *testing.T) {
	t.Parallel()

	if provision.Namespace.Namespaced() {
		t.Error("Namespace.Namespaced() = true, want false")
	}
	for _, k := range []provision.Kind{provision.Secret, provision.PersistentVolumeClaim, provision.Deployment, provision.Service} {
		if !k.Namespaced() {
			t.Errorf("%s.Namespaced() = false, want true", k)
		}
	}
}

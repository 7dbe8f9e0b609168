package provision

// Kind identifies one of the supported Kubernetes resource kinds. The set is
// closed: an application definition may use a subset, never additional kinds.
// The string value doubles as the manifest template file stem
// (e.g. "service" -> service.yaml).
type Kind string

const (
	// Namespace is the top-level grouping resource. Deleting it cascades
	// to every resource scoped beneath it, which is what makes uninstall
	// a single delete call.
	Namespace Kind = "namespace"

	// Secret holds per-instance credentials.
	Secret Kind = "secret"

	// PersistentVolumeClaim backs the instance's workspace storage.
	PersistentVolumeClaim Kind = "pvc"

	// Deployment is the workload resource whose pod phase drives readiness.
	Deployment Kind = "deployment"

	// Service exposes the workload publicly; its load-balancer ingress
	// provides the instance URL.
	Service Kind = "service"
)

// All returns every supported kind. The returned slice is a fresh copy;
// callers may reorder or filter it when building an application definition.
func All() []Kind {
	return []Kind{Namespace, Secret, PersistentVolumeClaim, Deployment, Service}
}

// IsValid reports whether k is a recognized Kind value.
func (k Kind) IsValid() bool {
	switch k {
	case Namespace, Secret, PersistentVolumeClaim, Deployment, Service:
		return true
	default:
		return false
	}
}

// Namespaced reports whether resources of this kind live inside the
// instance's grouping namespace. Namespace itself is cluster-scoped.
func (k Kind) Namespaced() bool {
	return k != Namespace
}

// String returns the kind's template file stem.
func (k Kind) String() string {
	return string(k)
}

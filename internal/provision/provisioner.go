package provision

import (
	"context"
	"fmt"
	"log/slog"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/yaml"

	"github.com/giantswarm/launchpad/internal/sentinel"
)

// ErrNotFound is returned by Read and Delete when no resource of the
// requested kind exists under the given scope key. During uninstall this is
// the success case, not a failure.
const ErrNotFound = sentinel.Error("resource not found")

// ErrUnknownKind is returned when an operation receives a Kind value outside
// the supported set.
const ErrUnknownKind = sentinel.Error("unknown resource kind")

// Result reports the outcome of a Create call.
type Result struct {
	// AlreadyExisted is true when the cluster reported the resource as
	// already present and the create was recovered as an idempotent no-op.
	AlreadyExisted bool
}

// createFunc decodes a rendered manifest and submits it for one kind.
type createFunc func(ctx context.Context, manifest []byte, scope string) error

// Provisioner performs create, read and delete calls against the cluster for
// each supported kind. It holds no per-instance state; one Provisioner is
// constructed per orchestrator and shared by all instances.
//
// Per-kind dispatch goes through an explicit table built at construction
// time rather than through reflection, so the supported kind set is visible
// in one place.
type Provisioner struct {
	client  kubernetes.Interface
	log     *slog.Logger
	creates map[Kind]createFunc
}

// New creates a Provisioner backed by the given clientset.
// If logger is nil, slog.Default() is used as a fallback.
func New(client kubernetes.Interface, logger *slog.Logger) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provisioner{
		client: client,
		log:    logger,
	}
	p.creates = map[Kind]createFunc{
		Namespace:             p.createNamespace,
		Secret:                p.createSecret,
		PersistentVolumeClaim: p.createPVC,
		Deployment:            p.createDeployment,
		Service:               p.createService,
	}
	return p
}

// Create submits a rendered manifest of the given kind. Namespace-scoped
// kinds are created inside the namespace named by scope; the Namespace kind
// ignores scope (the rendered manifest carries its own name).
//
// An "already exists" response from the cluster is recovered locally and
// reported via Result.AlreadyExisted. Any other cluster error propagates
// unchanged (wrapped for context).
func (p *Provisioner) Create(ctx context.Context, kind Kind, manifest []byte, scope string) (Result, error) {
	create, ok := p.creates[kind]
	if !ok {
		return Result{}, fmt.Errorf("create %q: %w", kind, ErrUnknownKind)
	}

	if err := create(ctx, manifest, scope); err != nil {
		if apierrors.IsAlreadyExists(err) {
			p.log.Debug("resource already exists, skipping", "kind", kind.String(), "scope", scope)
			return Result{AlreadyExisted: true}, nil
		}
		return Result{}, fmt.Errorf("create %s in %q: %w", kind, scope, err)
	}
	return Result{}, nil
}

// Read returns the resource of the given kind under the scope key. For the
// Namespace kind this is the namespace named scope; for namespaced kinds it
// is the first listed resource inside that namespace (an instance owns at
// most one resource per kind). Returns ErrNotFound when nothing exists.
func (p *Provisioner) Read(ctx context.Context, kind Kind, scope string) (runtime.Object, error) {
	var (
		obj runtime.Object
		err error
	)
	switch kind {
	case Namespace:
		var ns *corev1.Namespace
		ns, err = p.client.CoreV1().Namespaces().Get(ctx, scope, metav1.GetOptions{})
		if err == nil {
			obj = ns
		}
	case Secret:
		var list *corev1.SecretList
		list, err = p.client.CoreV1().Secrets(scope).List(ctx, metav1.ListOptions{})
		if err == nil && len(list.Items) > 0 {
			obj = &list.Items[0]
		}
	case PersistentVolumeClaim:
		var list *corev1.PersistentVolumeClaimList
		list, err = p.client.CoreV1().PersistentVolumeClaims(scope).List(ctx, metav1.ListOptions{})
		if err == nil && len(list.Items) > 0 {
			obj = &list.Items[0]
		}
	case Deployment:
		var list *appsv1.DeploymentList
		list, err = p.client.AppsV1().Deployments(scope).List(ctx, metav1.ListOptions{})
		if err == nil && len(list.Items) > 0 {
			obj = &list.Items[0]
		}
	case Service:
		var list *corev1.ServiceList
		list, err = p.client.CoreV1().Services(scope).List(ctx, metav1.ListOptions{})
		if err == nil && len(list.Items) > 0 {
			obj = &list.Items[0]
		}
	default:
		return nil, fmt.Errorf("read %q: %w", kind, ErrUnknownKind)
	}

	if apierrors.IsNotFound(err) {
		return nil, fmt.Errorf("read %s in %q: %w", kind, scope, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s in %q: %w", kind, scope, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("read %s in %q: %w", kind, scope, ErrNotFound)
	}
	return obj, nil
}

// Delete removes the resource(s) of the given kind under the scope key.
// Deleting the Namespace kind removes the grouping namespace itself, which
// cascades to everything scoped beneath it. Returns ErrNotFound when the
// resource was already gone.
func (p *Provisioner) Delete(ctx context.Context, kind Kind, scope string) error {
	var err error
	switch kind {
	case Namespace:
		err = p.client.CoreV1().Namespaces().Delete(ctx, scope, metav1.DeleteOptions{})
	case Secret:
		err = p.client.CoreV1().Secrets(scope).DeleteCollection(ctx, metav1.DeleteOptions{}, metav1.ListOptions{})
	case PersistentVolumeClaim:
		err = p.client.CoreV1().PersistentVolumeClaims(scope).DeleteCollection(ctx, metav1.DeleteOptions{}, metav1.ListOptions{})
	case Deployment:
		err = p.client.AppsV1().Deployments(scope).DeleteCollection(ctx, metav1.DeleteOptions{}, metav1.ListOptions{})
	case Service:
		// Services do not support DeleteCollection on all server versions;
		// delete listed items individually.
		var list *corev1.ServiceList
		list, err = p.client.CoreV1().Services(scope).List(ctx, metav1.ListOptions{})
		if err == nil {
			for idx := range list.Items {
				if delErr := p.client.CoreV1().Services(scope).Delete(ctx, list.Items[idx].Name, metav1.DeleteOptions{}); delErr != nil && !apierrors.IsNotFound(delErr) {
					err = delErr
					break
				}
			}
		}
	default:
		return fmt.Errorf("delete %q: %w", kind, ErrUnknownKind)
	}

	if apierrors.IsNotFound(err) {
		return fmt.Errorf("delete %s in %q: %w", kind, scope, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete %s in %q: %w", kind, scope, err)
	}
	return nil
}

// WorkloadPhase returns the pod phase of the instance's workload, or "" when
// no pod has been scheduled yet. The instance runs a single-replica
// deployment, so the first pod in the namespace is the workload.
func (p *Provisioner) WorkloadPhase(ctx context.Context, scope string) (string, error) {
	pods, err := p.client.CoreV1().Pods(scope).List(ctx, metav1.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("list pods in %q: %w", scope, err)
	}
	if len(pods.Items) == 0 {
		return "", nil
	}
	return string(pods.Items[0].Status.Phase), nil
}

// EndpointURL returns the public URL of the instance's service, or "" when
// the load balancer has not been assigned an ingress address yet.
func (p *Provisioner) EndpointURL(ctx context.Context, scope string) (string, error) {
	services, err := p.client.CoreV1().Services(scope).List(ctx, metav1.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("list services in %q: %w", scope, err)
	}
	if len(services.Items) == 0 {
		return "", nil
	}

	svc := &services.Items[0]
	ingress := svc.Status.LoadBalancer.Ingress
	if len(ingress) == 0 || len(svc.Spec.Ports) == 0 {
		return "", nil
	}

	host := ingress[0].IP
	if host == "" {
		host = ingress[0].Hostname
	}
	if host == "" {
		return "", nil
	}
	return fmt.Sprintf("http://%s:%d", host, svc.Spec.Ports[0].Port), nil
}

func (p *Provisioner) createNamespace(ctx context.Context, manifest []byte, _ string) error {
	var ns corev1.Namespace
	if err := yaml.Unmarshal(manifest, &ns); err != nil {
		return fmt.Errorf("decode namespace manifest: %w", err)
	}
	_, err := p.client.CoreV1().Namespaces().Create(ctx, &ns, metav1.CreateOptions{})
	return err
}

func (p *Provisioner) createSecret(ctx context.Context, manifest []byte, scope string) error {
	var secret corev1.Secret
	if err := yaml.Unmarshal(manifest, &secret); err != nil {
		return fmt.Errorf("decode secret manifest: %w", err)
	}
	secret.Namespace = scope
	_, err := p.client.CoreV1().Secrets(scope).Create(ctx, &secret, metav1.CreateOptions{})
	return err
}

func (p *Provisioner) createPVC(ctx context.Context, manifest []byte, scope string) error {
	var pvc corev1.PersistentVolumeClaim
	if err := yaml.Unmarshal(manifest, &pvc); err != nil {
		return fmt.Errorf("decode pvc manifest: %w", err)
	}
	pvc.Namespace = scope
	_, err := p.client.CoreV1().PersistentVolumeClaims(scope).Create(ctx, &pvc, metav1.CreateOptions{})
	return err
}

func (p *Provisioner) createDeployment(ctx context.Context, manifest []byte, scope string) error {
	var deploy appsv1.Deployment
	if err := yaml.Unmarshal(manifest, &deploy); err != nil {
		return fmt.Errorf("decode deployment manifest: %w", err)
	}
	deploy.Namespace = scope
	_, err := p.client.AppsV1().Deployments(scope).Create(ctx, &deploy, metav1.CreateOptions{})
	return err
}

func (p *Provisioner) createService(ctx context.Context, manifest []byte, scope string) error {
	var svc corev1.Service
	if err := yaml.Unmarshal(manifest, &svc); err != nil {
		return fmt.Errorf("decode service manifest: %w", err)
	}
	svc.Namespace = scope
	_, err := p.client.CoreV1().Services(scope).Create(ctx, &svc, metav1.CreateOptions{})
	return err
}

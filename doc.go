// Package launchpad launches per-session application instances on a
// Kubernetes cluster.
//
// Each launched instance lives in its own namespace derived from the
// application name and a caller-supplied session identifier, gets a
// dedicated public port drawn from a shared pool, and is reachable through a
// LoadBalancer service once the cluster assigns an ingress address.
// Uninstalling deletes the grouping namespace, which cascades to everything
// inside it, and returns the port to the pool.
//
// # Basic Usage
//
//	import "github.com/giantswarm/launchpad"
//
//	ctx := context.Background()
//
//	// import "k8s.io/client-go/kubernetes"
//	client, err := kubernetes.NewForConfig(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lp, err := launchpad.New(ctx, client)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lp.Close()
//
//	details, err := lp.Launch(ctx, "code-server", sessionID, "", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(details.URL) // http://<ingress>:<port>
//
//	// Later, when the session expires:
//	if err := lp.Uninstall(ctx, "code-server", sessionID, true); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sharing the Port Pool Across Processes
//
// By default the allocated-port set lives in process memory. When several
// processes launch onto the same cluster, point them at a shared state file
// so they draw from one pool:
//
//	lp, err := launchpad.New(ctx, client,
//	    launchpad.WithStatePath("/var/lib/launchpad/ports.db"),
//	)
//
// The state file is a SQLite database; concurrent processes coordinate
// through a file lock placed next to it.
//
// # Custom Applications
//
// The built-in catalog ships the code-server browser IDE. Additional
// applications are registered with their own definition and manifest
// templates:
//
//	cat := launchpad.DefaultCatalog()
//	if err := cat.Register(myAppDefinition); err != nil {
//	    log.Fatal(err)
//	}
//	lp, err := launchpad.New(ctx, client,
//	    launchpad.WithCatalog(cat),
//	    launchpad.WithManifestSource(myTemplates),
//	)
package launchpad

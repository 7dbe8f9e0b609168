package core

import "time"

// Details is the caller-facing observation of one application instance.
// Status and URL are empty until the cluster reports them.
type Details struct {
	// Status is the workload's pod phase (e.g. "Pending", "Running"),
	// or "" when no pod has been observed.
	Status string

	// URL is the instance's public endpoint, or "" while the load
	// balancer has no ingress address assigned.
	URL string

	// LastCheckedAt records when the cluster was last queried for this
	// observation.
	LastCheckedAt time.Time
}

// Ready reports whether the instance has left the pending states and has a
// reachable endpoint.
func (d Details) Ready() bool {
	return d.Status != "" && d.Status != "Pending" && d.URL != ""
}

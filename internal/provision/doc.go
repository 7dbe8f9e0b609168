// Package provision exposes a thin, uniform interface over the Kubernetes
// API for the five resource kinds an application instance is built from.
// A cluster-reported "already exists" on create is treated as a successful
// no-op; "not found" on read and delete is reported as ErrNotFound so
// callers can treat it as the nothing-to-clean-up case.
package provision

// Package core implements the application lifecycle orchestrator: ordered
// resource creation with pre/post hooks, readiness tracking, and uninstall
// sequencing for per-session application instances.
package core

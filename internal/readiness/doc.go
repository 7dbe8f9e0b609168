// Package readiness polls asynchronously-converging cluster state until an
// application instance is reachable. Every loop is bounded by a configured
// timeout and reports ErrWaitTimeout distinctly from cluster errors, so
// callers can tell "the cluster is broken" from "the cluster is just slow".
package readiness

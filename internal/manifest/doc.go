// Package manifest resolves per-kind resource templates into ready-to-submit
// manifests. Templates are looked up by (application template base, kind)
// and rendered with per-instance substitution values; an application
// definition may override the values for a kind through a Transform.
package manifest

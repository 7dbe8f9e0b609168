package launchpad

import (
	"github.com/giantswarm/launchpad/internal/core"
	"github.com/giantswarm/launchpad/internal/manifest"
	"github.com/giantswarm/launchpad/internal/portpool"
	"github.com/giantswarm/launchpad/internal/provision"
	"github.com/giantswarm/launchpad/internal/readiness"
	"github.com/giantswarm/launchpad/internal/sentinel"
)

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrUnknownApp is returned by every Launcher method when the
	// application name is not registered in the catalog.
	ErrUnknownApp = sentinel.Error("unknown application")

	// ErrAlreadyRegistered is returned by Catalog.Register when a
	// definition with the same name is already present.
	ErrAlreadyRegistered = sentinel.Error("application already registered")

	// ErrInvalidDefinition is returned by Catalog.Register when the
	// definition fails structural validation.
	ErrInvalidDefinition = core.ErrInvalidDefinition

	// ErrManifestNotFound is returned when an application's manifest source
	// has no template for a resource kind the launch sequence needs.
	ErrManifestNotFound = manifest.ErrManifestNotFound

	// ErrPoolExhausted is returned by Launch when no free public port is
	// available in the configured range.
	ErrPoolExhausted = portpool.ErrPoolExhausted

	// ErrWaitTimeout is returned when a bounded wait (readiness, namespace
	// termination) expires before the condition is met.
	ErrWaitTimeout = readiness.ErrWaitTimeout

	// ErrResourceNotFound reports a cluster resource that does not exist.
	// Launcher methods absorb it where absence is the expected outcome
	// (e.g. uninstalling an already-removed instance).
	ErrResourceNotFound = provision.ErrNotFound
)

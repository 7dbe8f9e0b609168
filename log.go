package launchpad

import (
	"log/slog"

	"github.com/giantswarm/launchpad/internal/core"
)

// SetLogger replaces the package-level logger used by launchpad.
// This allows applications to integrate launchpad logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; launchpad will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with
// "component" attribute, re-derived on the next use and then cached. Call
// SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// Thread safety: SetLogger is safe to call concurrently with other launchpad
// operations. Both the custom logger and the cached default are stored as
// atomic pointers, so loads and stores are data-race-free. Launchers created
// before the call keep the logger they were constructed with; call SetLogger
// before New for a strict guarantee.
//
// Example:
//
//	launchpad.SetLogger(myLogger.With("component", "launchpad"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}

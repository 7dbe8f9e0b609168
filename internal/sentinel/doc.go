// Package sentinel provides a const-string error type for declaring
// immutable sentinel errors.
package sentinel

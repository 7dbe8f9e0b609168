// Package catalog holds the built-in application definitions and their
// embedded manifest templates.
package catalog

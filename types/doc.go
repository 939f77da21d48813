// Package types defines the shared value types of the tokencount module:
// model profiles, load lifecycle states, per-model count results, and the
// structured error used across package boundaries.
//
// The package sits at the bottom of the dependency graph and imports only
// the standard library; every other package imports it.
package types

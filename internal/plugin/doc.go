// Package plugin holds the registry of installed pipeline packages.
//
// Packages register themselves explicitly, typically from an init function
// the way database/sql drivers do, instead of being discovered through
// filesystem scanning. Registration order assigns each package a stable,
// contiguous, zero-based index for the lifetime of the registry.
package plugin

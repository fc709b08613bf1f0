// Package bucket indexes and queries a dataset directory tree.
//
// A dataset root contains four top-level dataclass directories: Data holds
// raw inputs grouped by datatype, Processing holds per-pipeline step output,
// Results holds per-pipeline reports, and Mask holds mask data shared across
// pipelines. Step directories inside Processing, Results, and Mask are named
// "<code>_<name>" where the code is a three character step identifier.
//
// The Bucket maintains a SQLite file index under <root>/.pipet so category
// queries do not rescan the tree on every lookup; Update refreshes the index
// from the filesystem.
package bucket

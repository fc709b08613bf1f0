// Package main hosts the pipet CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// orchestrator calls against a dataset: package discovery, step execution
// with progress reporting, dataset queries, step removal, and configuration
// scaffolding. It centralizes configuration resolution, dataset path
// discovery, and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

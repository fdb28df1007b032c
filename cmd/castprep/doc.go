// Package main hosts the castprep CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// transcode runs, media probes, readiness checks, history queries, and
// configuration scaffolding. It centralizes configuration resolution,
// external tool discovery, and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

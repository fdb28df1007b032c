// Package deps resolves and reports on the external binaries castprep
// depends on.
//
// ResolveTools prefers bundled per-platform ffmpeg/ffprobe binaries under the
// vendor directory and degrades to PATH lookup when a bundle is absent. It is
// called once during process wiring; the resulting Tools value is immutable
// and injected into every supervisor rather than held as package state.
// CheckBinaries backs the `castprep check` report.
package deps

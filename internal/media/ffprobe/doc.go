// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect runs the prober as a one-shot subprocess and decodes the response
// into Result, keeping the raw payload available as an opaque pass-through for
// callers that surface it verbatim. Helper methods expose stream counts,
// duration, size, and bitrate without forcing callers to parse ffprobe's
// stringly-typed numbers themselves.
package ffprobe

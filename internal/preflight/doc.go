// Package preflight provides readiness checks for the external binaries and
// filesystem paths that castprep depends on.
//
// The CLI "castprep check" command runs RunAll and renders the results; the
// transcode command runs the same checks before launching an encode so a
// doomed run fails fast instead of partway through.
package preflight

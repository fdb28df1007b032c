// Package logging configures structured slog output for castprep.
//
// It exposes a console handler for interactive use, a JSON handler for log
// shipping, thin Attr aliases so call sites avoid importing log/slog directly,
// and a ProgressSampler that suppresses repetitive encoder progress lines
// while preserving stage changes and bucket crossings.
package logging

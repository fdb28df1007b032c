// Package config loads and validates castprep configuration.
//
// Configuration is TOML with three sections: [paths] for working, log, and
// vendor directories plus the history database location; [transcode] for
// encoder binary overrides and the fixed quality knobs; [logging] for output
// format and level. Load applies defaults, expands ~ paths, and validates the
// result so downstream packages can trust every field.
package config

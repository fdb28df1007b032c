// Package history persists a log of transcode jobs in SQLite so past runs
// can be inspected from the CLI.
package history

// Package services defines the shared error taxonomy for external-tool
// integrations.
//
// Failures from the encoder and prober are tagged with sentinel errors so
// callers can classify outcomes (encoding failure, probe failure, preemption)
// without parsing message text. Wrap builds consistently formatted errors that
// carry component and operation context alongside the sentinel.
package services

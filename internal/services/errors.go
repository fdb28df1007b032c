package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEncoding marks runtime failures reported by the external encoder,
	// including processes that were killed before finishing.
	ErrEncoding = errors.New("encoding error")
	// ErrProbe marks failures from the external metadata prober.
	ErrProbe = errors.New("probe error")
	// ErrPreempted marks jobs superseded by a newer transcode request.
	ErrPreempted = errors.New("preempted")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks caller input that fails precondition checks.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error that includes component context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrEncoding
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Outcome maps a job error to the terminal status label recorded in the
// history store.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ended"
	case errors.Is(err, ErrPreempted):
		return "preempted"
	default:
		return "error"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

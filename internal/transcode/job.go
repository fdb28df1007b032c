package transcode

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Job is the asynchronous result of one transcode request. It settles exactly
// once: nil on success, an encoding error on failure, or a preemption error
// when a newer request replaces it.
type Job struct {
	id     string
	input  string
	output string

	done chan struct{}
	once sync.Once
	err  error
}

func newJob(input, output string) *Job {
	return &Job{
		id:     uuid.NewString(),
		input:  input,
		output: output,
		done:   make(chan struct{}),
	}
}

// ID returns the job's unique identifier.
func (j *Job) ID() string { return j.id }

// Input returns the source identifier for the job.
func (j *Job) Input() string { return j.input }

// Output returns the destination identifier for the job.
func (j *Job) Output() string { return j.output }

// Done returns a channel closed when the job settles.
func (j *Job) Done() <-chan struct{} { return j.done }

// Err returns the terminal error once Done is closed, nil beforehand.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

// Wait blocks until the job settles or the context is cancelled. Cancelling
// the context abandons the wait only; the job keeps running until it settles
// or the supervisor kills it.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Job) settle(err error) {
	j.once.Do(func() {
		j.err = err
		close(j.done)
	})
}

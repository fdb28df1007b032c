package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

var commandContext = exec.CommandContext

// ProgressFunc receives parsed progress updates as the encoder reports them.
type ProgressFunc func(ProgressUpdate)

// Process is a handle to a launched encoder subprocess. It is exclusively
// owned by the supervisor that started it.
type Process interface {
	// Wait blocks until the process exits and returns its terminal error.
	// It is safe to call from multiple goroutines; all callers observe the
	// same result.
	Wait() error
	// Kill terminates the process immediately.
	Kill() error
}

// Client defines encoder launch behaviour.
type Client interface {
	Start(ctx context.Context, spec CommandSpec, progress ProgressFunc) (Process, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// CLI launches the ffmpeg command-line encoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the encoder invocation the client will use.
func (c *CLI) Binary() string {
	return c.binary
}

// Start launches the encoder asynchronously and begins relaying progress.
// The returned Process settles exactly once via Wait.
func (c *CLI) Start(ctx context.Context, spec CommandSpec, progress ProgressFunc) (Process, error) {
	if strings.TrimSpace(spec.Input) == "" {
		return nil, errors.New("input required")
	}
	if strings.TrimSpace(spec.Output) == "" {
		return nil, errors.New("output required")
	}
	if spec.Seek < 0 {
		return nil, fmt.Errorf("seek offset must not be negative, got %s", spec.Seek)
	}

	cmd := commandContext(ctx, c.binary, spec.Args()...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr := &tailBuffer{limit: 4096}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	proc := &process{
		cmd:        cmd,
		stderr:     stderr,
		readerDone: make(chan struct{}),
	}

	go func() {
		defer close(proc.readerDone)
		parser := newProgressParser(spec.Duration)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			update, complete := parser.feed(scanner.Text())
			if complete && progress != nil {
				progress(update)
			}
		}
	}()

	return proc, nil
}

var _ Client = (*CLI)(nil)

type process struct {
	cmd        *exec.Cmd
	stderr     *tailBuffer
	readerDone chan struct{}
	waitOnce   sync.Once
	waitErr    error
}

func (p *process) Wait() error {
	p.waitOnce.Do(func() {
		<-p.readerDone
		err := p.cmd.Wait()
		if err != nil {
			if detail := p.stderr.String(); detail != "" {
				err = fmt.Errorf("%w: %s", err, detail)
			}
		}
		p.waitErr = err
	})
	return p.waitErr
}

func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// tailBuffer retains the last limit bytes written so error messages carry the
// most recent encoder diagnostics without unbounded growth.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	data  []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append(b.data, p...)
	if len(b.data) > b.limit {
		b.data = b.data[len(b.data)-b.limit:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(string(b.data))
}

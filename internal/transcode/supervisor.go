package transcode

import (
	"context"
	"strings"
	"sync"
	"time"

	"log/slog"

	"castprep/internal/deps"
	"castprep/internal/logging"
	"castprep/internal/media/ffprobe"
	"castprep/internal/services"
	"castprep/internal/services/ffmpeg"
)

// Listener receives lifecycle notifications for one transcode request. Nil
// handlers are skipped.
type Listener struct {
	// TranscodeStarted receives the resolved command line once the encoder
	// process launches.
	TranscodeStarted func(commandLine string)
	// TranscodeProgress receives progress updates as the encoder reports
	// them; frequency and content follow the encoder's own semantics.
	TranscodeProgress func(update ffmpeg.ProgressUpdate)
}

// Options configures a single transcode request.
type Options struct {
	// Seek is a non-negative input-seek offset applied before decoding.
	Seek time.Duration
	// Duration optionally carries the known input duration so progress
	// percentages can be derived. Zero leaves percentages unreported.
	Duration time.Duration
	Listener Listener
}

// Quality holds the encoder quality knobs shared by every job of a
// supervisor.
type Quality struct {
	CRF    int
	Preset string
	Tune   string
}

// Supervisor owns at most one live encoder process and the state machine
// around it.
type Supervisor struct {
	client  ffmpeg.Client
	tools   deps.Tools
	quality Quality
	logger  *slog.Logger

	mu     sync.Mutex
	status Status
	proc   ffmpeg.Process
	job    *Job
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithClient injects a custom encoder client (primarily for tests).
func WithClient(client ffmpeg.Client) Option {
	return func(s *Supervisor) {
		if client != nil {
			s.client = client
		}
	}
}

// WithQuality overrides the default quality knobs.
func WithQuality(quality Quality) Option {
	return func(s *Supervisor) {
		s.quality = quality
	}
}

// New constructs a Supervisor around the resolved tools. The tools value is
// shared, immutable configuration resolved once per process.
func New(tools deps.Tools, logger *slog.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		tools:  tools,
		logger: logging.NewComponentLogger(logger, "transcode"),
		status: StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = ffmpeg.NewCLI(ffmpeg.WithBinary(tools.FFmpeg))
	}
	return s
}

// Status reports the supervisor's state relative to its current job.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Transcode kills any running job, then launches a new encode of input into
// a web-playable MP4 at output. The returned error covers precondition
// violations only; launch and runtime failures settle the returned Job.
func (s *Supervisor) Transcode(ctx context.Context, input, output string, opts Options) (*Job, error) {
	input = strings.TrimSpace(input)
	output = strings.TrimSpace(output)
	if input == "" {
		return nil, services.Wrap(services.ErrValidation, "transcode", "start", "input required", nil)
	}
	if output == "" {
		return nil, services.Wrap(services.ErrValidation, "transcode", "start", "output required", nil)
	}
	if opts.Seek < 0 {
		return nil, services.Wrap(services.ErrValidation, "transcode", "start", "seek offset must not be negative", nil)
	}

	job := newJob(input, output)
	spec := ffmpeg.CommandSpec{
		Input:    input,
		Output:   output,
		Seek:     opts.Seek,
		CRF:      s.quality.CRF,
		Preset:   s.quality.Preset,
		Tune:     s.quality.Tune,
		Duration: opts.Duration,
	}

	s.mu.Lock()
	s.preemptLocked()
	proc, err := s.client.Start(ctx, spec, s.relayProgress(job, opts.Listener))
	if err != nil {
		s.transitionLocked(StatusError)
		s.mu.Unlock()
		wrapped := services.Wrap(services.ErrEncoding, "transcode", "start encoder", "", err)
		s.logger.Error("encoder failed to start",
			logging.String(logging.FieldJobID, job.id),
			logging.Error(wrapped),
		)
		job.settle(wrapped)
		return job, nil
	}
	s.proc = proc
	s.job = job
	s.transitionLocked(StatusRunning)
	s.mu.Unlock()

	s.logger.Info("encoding started",
		logging.String(logging.FieldJobID, job.id),
		logging.String(logging.FieldInput, input),
		logging.String(logging.FieldOutput, output),
		logging.Duration("seek", opts.Seek),
	)
	if opts.Listener.TranscodeStarted != nil {
		opts.Listener.TranscodeStarted(spec.CommandLine(s.encoderBinary()))
	}

	go s.reap(job, proc)
	return job, nil
}

// KillProcess terminates the running process, if any, and clears the handle.
// It does not transition status itself; the path observing the exit owns
// that transition. Calling it outside StatusRunning is a no-op.
func (s *Supervisor) KillProcess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning || s.proc == nil {
		return
	}
	if err := s.proc.Kill(); err != nil {
		s.logger.Warn("failed to kill encoder process", logging.Error(err))
	}
	s.proc = nil
}

// ProbeMetadata runs the external prober against input as a one-shot
// operation. It does not touch the job slot or supervisor status.
func (s *Supervisor) ProbeMetadata(ctx context.Context, input string) (ffprobe.Result, error) {
	result, err := inspectMedia(ctx, s.tools.FFprobe, input)
	if err != nil {
		return ffprobe.Result{}, services.Wrap(services.ErrProbe, "transcode", "probe metadata", "", err)
	}
	return result, nil
}

// preemptLocked forces the supervisor back to idle, killing the running
// process and settling its job with a preemption error. The superseded
// caller observes nothing beyond that error.
func (s *Supervisor) preemptLocked() {
	if s.proc != nil {
		if err := s.proc.Kill(); err != nil {
			s.logger.Warn("failed to kill preempted process", logging.Error(err))
		}
		s.proc = nil
	}
	if prior := s.job; prior != nil {
		s.job = nil
		s.logger.Info("preempting running job",
			logging.String(logging.FieldJobID, prior.id),
			logging.String(logging.FieldInput, prior.input),
		)
		prior.settle(services.Wrap(services.ErrPreempted, "transcode", "job", "superseded by a newer transcode request", nil))
	}
	s.transitionLocked(StatusIdle)
}

// transitionLocked is the single mutation point for supervisor status.
func (s *Supervisor) transitionLocked(next Status) {
	if s.status == next {
		return
	}
	s.logger.Debug("status transition",
		logging.String("from", string(s.status)),
		logging.String("to", string(next)),
	)
	s.status = next
}

func (s *Supervisor) reap(job *Job, proc ffmpeg.Process) {
	err := proc.Wait()

	s.mu.Lock()
	if s.job != job {
		// Superseded while waiting; preemption already settled the job.
		s.mu.Unlock()
		return
	}
	s.proc = nil
	s.job = nil
	if err != nil {
		s.transitionLocked(StatusError)
	} else {
		s.transitionLocked(StatusEnded)
	}
	s.mu.Unlock()

	if err != nil {
		wrapped := services.Wrap(services.ErrEncoding, "transcode", "encode", "encoder reported failure", err)
		s.logger.Error("encoding failed",
			logging.String(logging.FieldJobID, job.id),
			logging.String(logging.FieldInput, job.input),
			logging.Error(wrapped),
		)
		job.settle(wrapped)
		return
	}
	s.logger.Info("encoding finished",
		logging.String(logging.FieldJobID, job.id),
		logging.String(logging.FieldOutput, job.output),
	)
	job.settle(nil)
}

func (s *Supervisor) relayProgress(job *Job, listener Listener) ffmpeg.ProgressFunc {
	sampler := logging.NewProgressSampler(5)
	return func(update ffmpeg.ProgressUpdate) {
		if !s.isCurrent(job) {
			return
		}
		if listener.TranscodeProgress != nil {
			listener.TranscodeProgress(update)
		}
		stage := progressStage(update)
		if !sampler.ShouldLog(update.Percent, stage) {
			return
		}
		attrs := []logging.Attr{
			logging.String(logging.FieldJobID, job.id),
			logging.String("progress_stage", stage),
		}
		if update.Percent >= 0 {
			attrs = append(attrs, logging.Float64("progress_percent", update.Percent))
		}
		if update.OutTime > 0 {
			attrs = append(attrs, logging.Duration("progress_out_time", update.OutTime))
		}
		if update.Speed > 0 {
			attrs = append(attrs, logging.Float64("progress_speed", update.Speed))
		}
		if update.Bitrate != "" {
			attrs = append(attrs, logging.String("progress_bitrate", update.Bitrate))
		}
		s.logger.Info("encoding progress", logging.Args(attrs...)...)
	}
}

func (s *Supervisor) isCurrent(job *Job) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.job == job
}

func (s *Supervisor) encoderBinary() string {
	if cli, ok := s.client.(*ffmpeg.CLI); ok {
		return cli.Binary()
	}
	if strings.TrimSpace(s.tools.FFmpeg) != "" {
		return s.tools.FFmpeg
	}
	return "ffmpeg"
}

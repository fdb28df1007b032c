package transcode

// Status describes the supervisor's relationship to its current job. It is
// only meaningful relative to the most recent transcode request; preempted
// jobs never surface a terminal status.
type Status string

const (
	// StatusIdle means no job has started or the previous handle is cleared.
	StatusIdle Status = "idle"
	// StatusRunning means a process is launched and not yet concluded.
	StatusRunning Status = "running"
	// StatusEnded means the current job finished successfully.
	StatusEnded Status = "ended"
	// StatusError means the current job's process reported a failure.
	StatusError Status = "error"
)

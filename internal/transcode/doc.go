// Package transcode supervises a single external encoding job at a time.
//
// A Supervisor owns zero or one live encoder process. Starting a new job
// preempts any running one: the prior process is killed and its job settles
// with a preemption error so no caller is ever left waiting on a superseded
// result. All lifecycle transitions are serialized behind one mutex and flow
// through a single transition function, keeping the idle/running/ended/error
// state machine auditable under concurrent callers.
//
// Metadata probing is a one-shot operation independent of the job slot and
// never affects supervisor status.
package transcode

// Package ffmpeg wraps the external FFmpeg encoder as a supervised
// subprocess.
//
// It exposes a Client interface the transcode supervisor drives, a CLI
// implementation that launches the real binary, and the fixed argument
// template that produces web-playable MP4 output. Progress is parsed from
// FFmpeg's -progress key=value stream into typed updates. Tests swap the
// command constructor to run a helper process instead of the real encoder.
package ffmpeg

package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Encoding defaults chosen for broad playback compatibility and fast,
// low-latency delivery.
const (
	DefaultCRF    = 23
	DefaultPreset = "ultrafast"
	DefaultTune   = "zerolatency"

	videoCodec = "libx264"
	audioCodec = "aac"
	// Fast-start plus fragmented muxing so playback can begin before the
	// encode finishes.
	movFlags        = "+faststart+frag_keyframe+empty_moov"
	outputContainer = "mp4"
)

// CommandSpec describes a single FFmpeg invocation. Output container and
// codec selection are fixed; only the seek offset and quality knobs vary.
type CommandSpec struct {
	Input  string
	Output string
	// Seek is applied as an input-seek offset before decoding starts.
	Seek   time.Duration
	CRF    int
	Preset string
	Tune   string
	// Duration is the known input duration, used to derive progress
	// percentages. Zero leaves percentages unreported.
	Duration time.Duration
}

// Args builds the full FFmpeg argument list for the spec. Zero-valued quality
// knobs fall back to the package defaults.
func (s CommandSpec) Args() []string {
	args := []string{"-hide_banner", "-nostdin", "-loglevel", "error", "-y"}
	if s.Seek > 0 {
		args = append(args, "-ss", formatSeconds(s.Seek))
	}
	args = append(args, "-i", s.Input)

	crf := s.CRF
	if crf <= 0 {
		crf = DefaultCRF
	}
	preset := strings.TrimSpace(s.Preset)
	if preset == "" {
		preset = DefaultPreset
	}
	tune := strings.TrimSpace(s.Tune)
	if tune == "" {
		tune = DefaultTune
	}

	args = append(args,
		"-c:v", videoCodec,
		"-c:a", audioCodec,
		"-crf", strconv.Itoa(crf),
		"-preset", preset,
		"-tune", tune,
		"-movflags", movFlags,
		"-f", outputContainer,
		"-progress", "pipe:1",
		"-nostats",
		s.Output,
	)
	return args
}

// CommandLine renders the invocation as a shell-style string for start
// notifications and logs.
func (s CommandSpec) CommandLine(binary string) string {
	parts := make([]string, 0, 24)
	parts = append(parts, quoteArg(strings.TrimSpace(binary)))
	for _, arg := range s.Args() {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\"'") {
		return fmt.Sprintf("%q", arg)
	}
	return arg
}

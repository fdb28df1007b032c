package ffprobe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFPROBE_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestInspectRequiresInput(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestInspectParsesStreams(t *testing.T) {
	setHelperCommand(t, "success")

	result, err := Inspect(context.Background(), "ffprobe", "/media/movie.avi")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 4947.2 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.Streams[0].CodecName != "mpeg4" {
		t.Fatalf("unexpected codec: %q", result.Streams[0].CodecName)
	}
	if !strings.Contains(string(result.RawJSON()), `"format_name"`) {
		t.Fatal("raw payload should pass through untouched")
	}
}

func TestInspectFailure(t *testing.T) {
	setHelperCommand(t, "failure")

	_, err := Inspect(context.Background(), "ffprobe", "/media/broken.avi")
	if err == nil {
		t.Fatal("expected inspect failure")
	}
	if !strings.Contains(err.Error(), "moov atom not found") {
		t.Fatalf("expected stderr detail in error, got %v", err)
	}
}

func TestInspectBadJSON(t *testing.T) {
	setHelperCommand(t, "badjson")

	if _, err := Inspect(context.Background(), "ffprobe", "/media/movie.avi"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("FFPROBE_HELPER_MODE") {
	case "success":
		fmt.Print(`{
  "streams": [
    {"index": 0, "codec_name": "mpeg4", "codec_type": "video", "width": 1280, "height": 720},
    {"index": 1, "codec_name": "mp3", "codec_type": "audio", "channels": 2, "sample_rate": "48000"}
  ],
  "format": {"filename": "/media/movie.avi", "nb_streams": 2, "format_name": "avi", "duration": "4947.200000", "size": "733468672", "bit_rate": "1186000"}
}`)
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "/media/broken.avi: moov atom not found")
		os.Exit(1)
	case "badjson":
		fmt.Println("not-json")
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

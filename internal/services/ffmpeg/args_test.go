package ffmpeg

import (
	"strings"
	"testing"
	"time"
)

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}

func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	idx := findArg(args, flag)
	if idx == -1 {
		t.Fatalf("expected %s in args %v", flag, args)
	}
	if idx+1 >= len(args) {
		t.Fatalf("%s flag missing value in args %v", flag, args)
	}
	return args[idx+1]
}

func TestArgsFixedTemplate(t *testing.T) {
	spec := CommandSpec{Input: "/media/in.avi", Output: "/media/out.mp4"}
	args := spec.Args()

	if argValue(t, args, "-c:v") != "libx264" {
		t.Fatalf("expected libx264 video codec, got %v", args)
	}
	if argValue(t, args, "-c:a") != "aac" {
		t.Fatalf("expected aac audio codec, got %v", args)
	}
	if argValue(t, args, "-crf") != "23" {
		t.Fatalf("expected default crf 23, got %v", args)
	}
	if argValue(t, args, "-preset") != "ultrafast" {
		t.Fatalf("expected ultrafast preset, got %v", args)
	}
	if argValue(t, args, "-tune") != "zerolatency" {
		t.Fatalf("expected zerolatency tune, got %v", args)
	}
	if argValue(t, args, "-movflags") != "+faststart+frag_keyframe+empty_moov" {
		t.Fatalf("expected fragmented fast-start movflags, got %v", args)
	}
	if argValue(t, args, "-f") != "mp4" {
		t.Fatalf("expected mp4 container, got %v", args)
	}
	if findArg(args, "-ss") != -1 {
		t.Fatalf("seek flag should be absent without an offset: %v", args)
	}
	if args[len(args)-1] != "/media/out.mp4" {
		t.Fatalf("output must be the final argument: %v", args)
	}
}

func TestArgsSeekPrecedesInput(t *testing.T) {
	spec := CommandSpec{Input: "/media/in.avi", Output: "/media/out.mp4", Seek: 30 * time.Second}
	args := spec.Args()

	seekIdx := findArg(args, "-ss")
	inputIdx := findArg(args, "-i")
	if seekIdx == -1 || inputIdx == -1 {
		t.Fatalf("expected both -ss and -i in args %v", args)
	}
	if seekIdx > inputIdx {
		t.Fatalf("input-seek offset must precede -i: %v", args)
	}
	if args[seekIdx+1] != "30" {
		t.Fatalf("expected seek value 30, got %q", args[seekIdx+1])
	}
}

func TestArgsFractionalSeek(t *testing.T) {
	spec := CommandSpec{Input: "in.mkv", Output: "out.mp4", Seek: 1500 * time.Millisecond}
	if argValue(t, spec.Args(), "-ss") != "1.5" {
		t.Fatalf("expected fractional seek 1.5, got %v", spec.Args())
	}
}

func TestArgsQualityOverrides(t *testing.T) {
	spec := CommandSpec{Input: "in.mkv", Output: "out.mp4", CRF: 28, Preset: "veryfast", Tune: "film"}
	args := spec.Args()
	if argValue(t, args, "-crf") != "28" {
		t.Fatalf("expected crf override, got %v", args)
	}
	if argValue(t, args, "-preset") != "veryfast" {
		t.Fatalf("expected preset override, got %v", args)
	}
	if argValue(t, args, "-tune") != "film" {
		t.Fatalf("expected tune override, got %v", args)
	}
}

func TestCommandLineQuotesPaths(t *testing.T) {
	spec := CommandSpec{Input: "/media/two words.avi", Output: "/media/out.mp4"}
	line := spec.CommandLine("ffmpeg")
	if !strings.HasPrefix(line, "ffmpeg ") {
		t.Fatalf("command line should start with the binary: %q", line)
	}
	if !strings.Contains(line, `"/media/two words.avi"`) {
		t.Fatalf("expected quoted input path in %q", line)
	}
}

package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func setHelperCommand(t *testing.T, mode string) *[]string {
	t.Helper()
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &capturedArgs
}

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/ffmpeg/bin/ffmpeg"))
	if cli.Binary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected binary override, got %q", cli.Binary())
	}
}

func TestStartRequiresInput(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Start(context.Background(), CommandSpec{Output: "/tmp/out.mp4"}, nil); err == nil {
		t.Fatal("expected error when input is empty")
	}
}

func TestStartRequiresOutput(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Start(context.Background(), CommandSpec{Input: "/media/in.avi"}, nil); err == nil {
		t.Fatal("expected error when output is empty")
	}
}

func TestStartRejectsNegativeSeek(t *testing.T) {
	cli := NewCLI()
	spec := CommandSpec{Input: "in.avi", Output: "out.mp4", Seek: -time.Second}
	if _, err := cli.Start(context.Background(), spec, nil); err == nil {
		t.Fatal("expected error for negative seek")
	}
}

func TestStartSuccessRelaysProgress(t *testing.T) {
	captured := setHelperCommand(t, "success")

	cli := NewCLI()
	spec := CommandSpec{Input: "/media/in.avi", Output: "/media/out.mp4", Duration: 40 * time.Second}

	var updates []ProgressUpdate
	proc, err := cli.Start(context.Background(), spec, func(update ProgressUpdate) {
		updates = append(updates, update)
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := proc.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if findArg(*captured, "-progress") == -1 {
		t.Fatalf("expected -progress flag in args %v", *captured)
	}
	if len(updates) != 3 {
		t.Fatalf("expected 3 progress updates, got %d", len(updates))
	}
	if updates[0].Percent != 25 {
		t.Fatalf("expected first update at 25 percent, got %f", updates[0].Percent)
	}
	last := updates[len(updates)-1]
	if !last.Done {
		t.Fatal("final update should be marked done")
	}
	if last.Percent != 100 {
		t.Fatalf("expected final update at 100 percent, got %f", last.Percent)
	}
}

func TestStartFailureCarriesStderr(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	proc, err := cli.Start(context.Background(), CommandSpec{Input: "in.avi", Output: "out.mp4"}, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitErr := proc.Wait()
	if waitErr == nil {
		t.Fatal("expected wait failure")
	}
	if !strings.Contains(waitErr.Error(), "Unsupported codec") {
		t.Fatalf("expected stderr detail in error, got %v", waitErr)
	}
}

func TestWaitIsIdempotent(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	proc, err := cli.Start(context.Background(), CommandSpec{Input: "in.avi", Output: "out.mp4"}, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	first := proc.Wait()
	second := proc.Wait()
	if first == nil || second == nil {
		t.Fatal("expected both waits to fail")
	}
	if first.Error() != second.Error() {
		t.Fatalf("wait results diverged: %v vs %v", first, second)
	}
}

func TestKillTerminatesProcess(t *testing.T) {
	setHelperCommand(t, "hang")

	cli := NewCLI()
	proc, err := cli.Start(context.Background(), CommandSpec{Input: "in.avi", Output: "out.mp4"}, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := proc.Kill(); err != nil {
		t.Fatalf("Kill: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()
	select {
	case waitErr := <-done:
		if waitErr == nil {
			t.Fatal("killed process should report an error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after Kill")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		fmt.Println("frame=240")
		fmt.Println("fps=120.0")
		fmt.Println("out_time_us=10000000")
		fmt.Println("speed=4.0x")
		fmt.Println("progress=continue")
		fmt.Println("frame=480")
		fmt.Println("out_time_us=20000000")
		fmt.Println("progress=continue")
		fmt.Println("frame=960")
		fmt.Println("out_time_us=40000000")
		fmt.Println("progress=end")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "Error while opening encoder - Unsupported codec")
		os.Exit(1)
	case "hang":
		time.Sleep(time.Minute)
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

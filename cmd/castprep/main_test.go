package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	binDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		binDir:     filepath.Join(base, "bin"),
	}

	content := fmt.Sprintf(`[paths]
work_dir = %q
log_dir = %q
vendor_dir = %q
history_db = %q
`,
		filepath.Join(base, "work"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "vendor"),
		filepath.Join(base, "work", "history.db"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) stubBinaries(t *testing.T, names ...string) {
	t.Helper()
	if err := os.MkdirAll(e.binDir, 0o755); err != nil {
		t.Fatalf("create stub bin dir: %v", err)
	}
	for _, name := range names {
		path := filepath.Join(e.binDir, name)
		if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", e.binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got %q", needle, haystack)
	}
}

func TestCLITranscodeSkipsPlayableInput(t *testing.T) {
	env := setupCLITestEnv(t)

	input := filepath.Join(env.baseDir, "movie.mp4")
	if err := os.WriteFile(input, []byte("data"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, _, err := runCLI(t, []string{"transcode", input}, env.configPath)
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}
	requireContains(t, out, "already web-playable")
}

func TestCLITranscodeRejectsMissingExtension(t *testing.T) {
	env := setupCLITestEnv(t)

	input := filepath.Join(env.baseDir, "noextension")
	if err := os.WriteFile(input, []byte("data"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	_, _, err := runCLI(t, []string{"transcode", input}, env.configPath)
	if err == nil {
		t.Fatal("expected classification error for extension-less input")
	}
	requireContains(t, err.Error(), "classify input")
}

func TestCLITranscodeRejectsMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"transcode", filepath.Join(env.baseDir, "missing.mkv")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestCLICheckReportsMissingBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PATH", env.binDir)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail without ffmpeg on PATH")
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "ERROR")
}

func TestCLICheckPassesWithStubbedBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	env.stubBinaries(t, "ffmpeg", "ffprobe")

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v (output: %q)", err, out)
	}
	requireContains(t, out, "All checks passed")
}

func TestCLIHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No transcode history yet")
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		input string
		args  []string
		want  string
	}{
		{"/tmp/movie.mkv", []string{"/tmp/movie.mkv"}, "/tmp/movie.mp4"},
		{"/tmp/movie.mp4", []string{"/tmp/movie.mp4"}, "/tmp/movie.web.mp4"},
		{"/tmp/movie.mkv", []string{"/tmp/movie.mkv", "/out/custom.mp4"}, "/out/custom.mp4"},
	}
	for _, tt := range tests {
		got, err := resolveOutputPath(tt.input, tt.args)
		if err != nil {
			t.Fatalf("resolveOutputPath(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("resolveOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

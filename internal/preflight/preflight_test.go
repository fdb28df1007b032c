package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"castprep/internal/config"
	"castprep/internal/deps"
)

func stubBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub binary: %v", err)
	}
	return path
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDirectoryAccess("Work directory", dir); !result.Passed {
		t.Fatalf("expected pass for temp dir, got %+v", result)
	}

	missing := filepath.Join(dir, "nope")
	if result := CheckDirectoryAccess("Work directory", missing); result.Passed {
		t.Fatalf("expected failure for missing dir, got %+v", result)
	}

	file := stubBinary(t, dir, "plain-file")
	if result := CheckDirectoryAccess("Work directory", file); result.Passed {
		t.Fatalf("expected failure for non-directory, got %+v", result)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	result := CheckFreeSpace("Work directory space", t.TempDir())
	if result.Detail == "" {
		t.Fatal("expected detail with free space figure")
	}

	if result := CheckFreeSpace("Work directory space", filepath.Join(t.TempDir(), "nope")); result.Passed {
		t.Fatalf("expected failure for missing path, got %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	tools := deps.Tools{
		FFmpeg:  stubBinary(t, dir, "ffmpeg"),
		FFprobe: stubBinary(t, dir, "ffprobe"),
	}

	results := RunAll(context.Background(), &cfg, tools)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if !Passed(results) {
		t.Fatalf("expected all checks to pass, got %+v", results)
	}

	tools.FFmpeg = filepath.Join(dir, "missing-ffmpeg")
	results = RunAll(context.Background(), &cfg, tools)
	if Passed(results) {
		t.Fatal("expected failure when encoder binary is missing")
	}
}

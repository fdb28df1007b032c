package deps

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"castprep/internal/logging"
)

// Tools holds the resolved encoder and prober invocations. A bare name means
// the binary is resolved from PATH when the process starts.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// ResolveTools locates the ffmpeg and ffprobe binaries for the current
// platform. Bundled binaries under <vendorDir>/<os>-<arch>/ win; otherwise
// the bare command name is returned and a diagnostic names the platform so
// operators know the bundle was skipped. Resolution never fails: a missing
// bundle only surfaces later if the PATH fallback cannot start either.
func ResolveTools(vendorDir string, logger *slog.Logger) Tools {
	return resolveToolsFor(vendorDir, runtime.GOOS, runtime.GOARCH, logger)
}

func resolveToolsFor(vendorDir, goos, goarch string, logger *slog.Logger) Tools {
	if logger == nil {
		logger = logging.NewNop()
	}
	return Tools{
		FFmpeg:  resolveBinary(vendorDir, "ffmpeg", goos, goarch, logger),
		FFprobe: resolveBinary(vendorDir, "ffprobe", goos, goarch, logger),
	}
}

func resolveBinary(vendorDir, name, goos, goarch string, logger *slog.Logger) string {
	vendorDir = strings.TrimSpace(vendorDir)
	binary := name
	if goos == "windows" {
		binary += ".exe"
	}
	if vendorDir != "" {
		candidate := filepath.Join(vendorDir, goos+"-"+goarch, binary)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info, goos) {
			logger.Debug("using bundled binary",
				logging.String("binary", name),
				logging.String("path", candidate),
			)
			return candidate
		}
	}
	logger.Info("bundled binary not found, falling back to PATH",
		logging.String("binary", name),
		logging.String("os", goos),
		logging.String("arch", goarch),
	)
	return binary
}

func isExecutable(info os.FileInfo, goos string) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if goos == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

package container

import (
	"fmt"
	"path/filepath"
	"strings"
)

// mp4Family lists extensions whose container is already MP4 and plays
// progressively in browsers without re-muxing.
var mp4Family = map[string]struct{}{
	".mp4": {},
	".m4v": {},
}

// knownMedia lists non-MP4 containers castprep expects to encounter. Matching
// one of these is informational only: anything outside the MP4 family needs
// transcoding, recognized or not.
var knownMedia = map[string]struct{}{
	".avi":  {},
	".flv":  {},
	".mkv":  {},
	".mov":  {},
	".mpg":  {},
	".mpeg": {},
	".ogv":  {},
	".ts":   {},
	".webm": {},
	".wmv":  {},
}

// NeedsTranscoding reports whether the named file must be transcoded before
// web playback. Only MP4-family containers skip transcoding; an unrecognized
// extension is conservatively treated as needing it. A name without an
// extension cannot be classified and returns an error.
func NeedsTranscoding(filename string) (bool, error) {
	ext := normalizedExt(filename)
	if ext == "" {
		return false, fmt.Errorf("classify %q: no file extension", filename)
	}
	if _, ok := mp4Family[ext]; ok {
		return false, nil
	}
	return true, nil
}

// Recognized reports whether the extension belongs to a container castprep
// knows about.
func Recognized(filename string) bool {
	ext := normalizedExt(filename)
	if ext == "" {
		return false
	}
	if _, ok := mp4Family[ext]; ok {
		return true
	}
	_, ok := knownMedia[ext]
	return ok
}

func normalizedExt(filename string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}

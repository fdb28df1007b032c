package transcode

import (
	"context"

	"castprep/internal/media/ffprobe"
)

// inspectMedia is the ffprobe function used for metadata probing. It is a
// package-level variable so tests can override it.
var inspectMedia = ffprobe.Inspect

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := inspectMedia
	inspectMedia = fn
	return func() {
		inspectMedia = previous
	}
}

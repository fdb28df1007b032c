// Package container classifies media files by their container format.
//
// The only question it answers is whether a file already sits in the MP4
// family and can be served for progressive web playback as-is, or needs to go
// through the transcode supervisor first.
package container

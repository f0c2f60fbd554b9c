// Package video abstracts sequential frame decoding behind a single Source
// interface with two backends: ffmpeg (via u2takey/ffmpeg-go) for the common
// container formats and a pure-Go MPEG-1 decoder for .mpg files.
package video

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"framesnatch/internal/domain"
)

// Source provides sequential frame decoding for one video file.
// Implementations are not safe for concurrent use.
type Source interface {
	// ReadFrame decodes and returns the next frame. It returns io.EOF when
	// the stream is exhausted and a non-EOF error when decoding breaks
	// mid-stream.
	ReadFrame() (image.Image, error)

	// Info returns the metadata reported by the container. FrameRate and
	// TotalFrames may be zero or negative when the metadata is missing or
	// corrupt; callers must not trust them blindly.
	Info() domain.VideoInfo

	// Position returns the 1-based index of the last frame returned by
	// ReadFrame. It advances monotonically and is 0 before the first read.
	Position() int

	// Close releases the decoder. Safe to call more than once.
	Close() error
}

// ffmpegExtensions are the container formats handed to the ffmpeg backend.
var ffmpegExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
}

// Open opens a video file with the backend registered for its extension.
func Open(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".mpg" || ext == ".mpeg":
		return openMPEG(path)
	case ffmpegExtensions[ext]:
		return openFFmpeg(path)
	default:
		return nil, fmt.Errorf("unsupported video format %q", ext)
	}
}

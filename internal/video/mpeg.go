package video

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/gen2brain/mpeg"

	"framesnatch/internal/domain"
)

// mpegSource decodes MPEG-1 program streams in-process, no ffmpeg binary
// required.
type mpegSource struct {
	info   domain.VideoInfo
	file   *os.File
	dec    *mpeg.MPEG
	pos    int
	closed bool
}

func openMPEG(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := mpeg.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open mpeg %s: %w", path, err)
	}
	dec.SetAudioEnabled(false)

	info := domain.VideoInfo{
		FrameRate: dec.Framerate(),
		Width:     dec.Width(),
		Height:    dec.Height(),
		Duration:  dec.Duration(),
	}
	if info.FrameRate > 0 && info.Duration > 0 {
		info.TotalFrames = int(math.Floor(info.Duration.Seconds() * info.FrameRate))
	}

	return &mpegSource{info: info, file: f, dec: dec}, nil
}

func (s *mpegSource) ReadFrame() (image.Image, error) {
	frame := s.dec.DecodeVideo()
	if frame == nil {
		// The decoder reports nil both at end of stream and on corrupt
		// data; only the former is a clean EOF.
		if s.dec.HasEnded() {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("decode failed at position %d", s.pos+1)
	}

	s.pos++
	return frame.RGBA(), nil
}

func (s *mpegSource) Info() domain.VideoInfo { return s.info }

func (s *mpegSource) Position() int { return s.pos }

func (s *mpegSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

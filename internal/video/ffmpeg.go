package video

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"framesnatch/internal/domain"
)

func init() {
	// The TUI owns stdout; keep ffmpeg-go from printing compiled commands.
	ffmpeg.LogCompiledCommand = false
}

// probeFormat mirrors the subset of ffprobe JSON output we care about.
type probeFormat struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

// ffmpegSource streams raw rgb24 frames out of an ffmpeg child process.
type ffmpegSource struct {
	info     domain.VideoInfo
	cmd      *exec.Cmd
	pipe     *io.PipeReader
	frameBuf []byte // one frame of packed rgb24
	pos      int
	closed   bool
}

// openFFmpeg probes the file and starts an ffmpeg process writing rawvideo
// rgb24 to a pipe. Frames are then fixed-size reads off that pipe.
func openFFmpeg(path string) (Source, error) {
	info, err := probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("probe %s: no usable video stream", path)
	}

	pr, pw := io.Pipe()
	cmd := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{"format": "rawvideo", "pix_fmt": "rgb24"}).
		WithOutput(pw).
		Compile()

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	// Close the write end when ffmpeg exits so reads observe EOF. A decode
	// failure surfaces as the pipe error instead of a clean EOF.
	go func() {
		err := cmd.Wait()
		if err != nil {
			pw.CloseWithError(fmt.Errorf("ffmpeg: %w", err))
			return
		}
		pw.Close()
	}()

	return &ffmpegSource{
		info:     info,
		cmd:      cmd,
		pipe:     pr,
		frameBuf: make([]byte, info.Width*info.Height*3),
	}, nil
}

func (s *ffmpegSource) ReadFrame() (image.Image, error) {
	_, err := io.ReadFull(s.pipe, s.frameBuf)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		// A truncated trailing frame means the stream broke mid-frame.
		return nil, fmt.Errorf("short frame read at position %d", s.pos+1)
	}
	if err != nil {
		return nil, err
	}

	s.pos++

	img := image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	for i := 0; i < s.info.Width*s.info.Height; i++ {
		img.Pix[i*4+0] = s.frameBuf[i*3+0]
		img.Pix[i*4+1] = s.frameBuf[i*3+1]
		img.Pix[i*4+2] = s.frameBuf[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img, nil
}

func (s *ffmpegSource) Info() domain.VideoInfo { return s.info }

func (s *ffmpegSource) Position() int { return s.pos }

func (s *ffmpegSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.pipe.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return err
}

// probe reads stream metadata with ffprobe via ffmpeg-go.
func probe(path string) (domain.VideoInfo, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return domain.VideoInfo{}, err
	}
	return parseProbe(out)
}

// parseProbe extracts the first video stream's metadata from ffprobe JSON.
// Missing rate or frame-count fields come back as zero values, never errors;
// the sampler treats those as unknown.
func parseProbe(out string) (domain.VideoInfo, error) {
	var info domain.VideoInfo

	var pf probeFormat
	if err := json.Unmarshal([]byte(out), &pf); err != nil {
		return info, fmt.Errorf("parse probe output: %w", err)
	}

	var vs *probeStream
	for i := range pf.Streams {
		if pf.Streams[i].CodecType == "video" {
			vs = &pf.Streams[i]
			break
		}
	}
	if vs == nil {
		return info, fmt.Errorf("no video stream")
	}

	info.Width = vs.Width
	info.Height = vs.Height
	info.FrameRate = parseRational(vs.AvgFrameRate)

	if d, err := strconv.ParseFloat(vs.Duration, 64); err == nil {
		info.Duration = time.Duration(d * float64(time.Second))
	} else if d, err := strconv.ParseFloat(pf.Format.Duration, 64); err == nil {
		info.Duration = time.Duration(d * float64(time.Second))
	}

	if n, err := strconv.Atoi(vs.NbFrames); err == nil && n > 0 {
		info.TotalFrames = n
	} else if info.FrameRate > 0 && info.Duration > 0 {
		// Some containers omit nb_frames; estimate from duration.
		info.TotalFrames = int(math.Floor(info.Duration.Seconds() * info.FrameRate))
	}

	return info, nil
}

// parseRational parses ffprobe rate strings like "30000/1001" or "25/1".
// Returns 0 for missing or bogus values.
func parseRational(s string) float64 {
	if s == "" || s == "0/0" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

package video

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRational(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001.0},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
		{"abc", 0},
		{"30/0", 0},
	}

	for _, tt := range tests {
		require.InDelta(t, tt.want, parseRational(tt.in), 1e-9, "parseRational(%q)", tt.in)
	}
}

func TestParseProbe(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "audio", "duration": "10.0"},
			{"codec_type": "video", "width": 640, "height": 480,
			 "avg_frame_rate": "30/1", "nb_frames": "300", "duration": "10.0"}
		],
		"format": {"duration": "10.0"}
	}`

	info, err := parseProbe(out)
	require.NoError(t, err)
	require.Equal(t, 640, info.Width)
	require.Equal(t, 480, info.Height)
	require.InDelta(t, 30.0, info.FrameRate, 1e-9)
	require.Equal(t, 300, info.TotalFrames)
	require.Equal(t, 10*time.Second, info.Duration)
}

func TestParseProbeEstimatesMissingFrameCount(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "video", "width": 320, "height": 240,
			 "avg_frame_rate": "25/1"}
		],
		"format": {"duration": "4.5"}
	}`

	info, err := parseProbe(out)
	require.NoError(t, err)
	// 4.5s at 25fps, floored
	require.Equal(t, 112, info.TotalFrames)
}

func TestParseProbeCorruptMetadata(t *testing.T) {
	// A stream with no rate and no duration must come back as unknowns,
	// not an error: the sampler falls back to keeping every frame.
	out := `{
		"streams": [
			{"codec_type": "video", "width": 320, "height": 240,
			 "avg_frame_rate": "0/0", "nb_frames": "0"}
		],
		"format": {}
	}`

	info, err := parseProbe(out)
	require.NoError(t, err)
	require.Zero(t, info.FrameRate)
	require.Zero(t, info.TotalFrames)
}

func TestParseProbeNoVideoStream(t *testing.T) {
	out := `{"streams": [{"codec_type": "audio"}], "format": {}}`

	_, err := parseProbe(out)
	require.Error(t, err)
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	_, err := Open("clip.gif")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported video format")
}

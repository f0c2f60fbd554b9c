package domain

import "time"

// SamplingJob describes one frame-sampling run. TargetRate is the desired
// number of retained frames per second of video, i.e. the reciprocal of the
// seconds-between-snapshots the user enters.
type SamplingJob struct {
	VideoPath  string
	OutputDir  string
	TargetRate float64
}

// Snapshot is one frame written to disk during a sampling run.
type Snapshot struct {
	Index    int    // zero-based sequence index, assigned at write time
	Path     string // path of the written file
	Position int    // 1-based source frame position the image came from
}

// VideoInfo is the metadata a decoding backend reports about a source.
// Any of these fields may be zero or negative when container metadata is
// missing or corrupt; consumers must treat such values as unknown.
type VideoInfo struct {
	FrameRate   float64
	TotalFrames int
	Width       int
	Height      int
	Duration    time.Duration
}

// SamplingProgress represents the current sampling state
type SamplingProgress struct {
	IsSampling bool
	Snapshots  int
	Fraction   float64 // 0..1, only meaningful when Known is true
	Known      bool    // false when the source reports no usable total
}

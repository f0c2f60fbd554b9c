// Package sampler runs frame-sampling jobs: it decodes a video source
// sequentially, keeps every interval-th frame and writes it to a numbered
// JPEG file, publishing progress and outcome events on the bus.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"framesnatch/internal/domain"
	"framesnatch/internal/eventbus"
	"framesnatch/internal/video"
)

// Validation errors returned by Start before any decoding happens.
var (
	ErrInvalidSpacing = errors.New("target spacing must be greater than zero")
	ErrMissingVideo   = errors.New("video path is required")
	ErrMissingOutput  = errors.New("output directory is required")
)

// Service runs one sampling job at a time on a background goroutine
type Service interface {
	Start(ctx context.Context, job domain.SamplingJob) error
	Stop()
}

// service is the concrete implementation
type service struct {
	bus        eventbus.EventBus
	logger     *zap.Logger
	open       func(path string) (video.Source, error)
	mu         sync.Mutex
	isSampling bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewService creates a new sampling service
func NewService(bus eventbus.EventBus, logger *zap.Logger) Service {
	s := &service{
		bus:    bus,
		logger: logger,
		open:   video.Open,
	}

	// Subscribe to sampling requests
	bus.Subscribe(eventbus.EventSamplingRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SamplingRequestedEvent); ok {
			if err := s.Start(context.Background(), event.Job); err != nil {
				bus.Publish(eventbus.ErrorEvent{Message: "could not start sampling", Err: err})
			}
		}
	})

	return s
}

// Start validates the job and begins sampling in the background. A second
// Start while a run is in progress is an error.
func (s *service) Start(ctx context.Context, job domain.SamplingJob) error {
	if err := validate(job); err != nil {
		return err
	}

	s.mu.Lock()
	if s.isSampling {
		s.mu.Unlock()
		return fmt.Errorf("sampling already in progress")
	}
	s.isSampling = true

	runCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.isSampling = false
			s.cancelFunc = nil
			s.mu.Unlock()
		}()

		s.run(runCtx, job)
	}()

	return nil
}

// Stop cancels any ongoing run and waits for it to wind down
func (s *service) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// run executes a single sampling job to completion, cancellation or failure
func (s *service) run(ctx context.Context, job domain.SamplingJob) {
	log := s.logger.With(zap.String("video", job.VideoPath), zap.String("out", job.OutputDir))

	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		log.Error("could not create output directory", zap.Error(err))
		s.bus.Publish(eventbus.SamplingFailedEvent{Stage: "open", Err: err})
		return
	}

	src, err := s.open(job.VideoPath)
	if err != nil {
		log.Error("could not open video source", zap.Error(err))
		s.bus.Publish(eventbus.SamplingFailedEvent{Stage: "open", Err: err})
		return
	}
	defer src.Close()

	info := src.Info()
	interval := Interval(info.FrameRate, job.TargetRate)

	log.Info("sampling started",
		zap.Float64("actual_rate", info.FrameRate),
		zap.Float64("target_rate", job.TargetRate),
		zap.Int("interval", interval),
		zap.Int("total_frames", info.TotalFrames))

	s.bus.Publish(eventbus.SamplingStartedEvent{Job: job, Info: info})

	snapshots := 0
	for {
		// Cooperative cancellation, checked between frame reads only, so
		// latency is bounded by one decode plus one write.
		select {
		case <-ctx.Done():
			log.Info("sampling canceled", zap.Int("snapshots", snapshots))
			s.bus.Publish(eventbus.SamplingCanceledEvent{Snapshots: snapshots})
			return
		default:
		}

		img, err := src.ReadFrame()
		if err == io.EOF {
			log.Info("sampling completed", zap.Int("snapshots", snapshots))
			s.bus.Publish(eventbus.SamplingCompletedEvent{
				OutputDir: job.OutputDir,
				Snapshots: snapshots,
			})
			return
		}
		if err != nil {
			// A mid-stream decode error is not the same as end of stream.
			log.Error("frame read failed mid-stream", zap.Int("position", src.Position()), zap.Error(err))
			s.bus.Publish(eventbus.SamplingFailedEvent{Stage: "read", Err: err})
			return
		}

		p := src.Position()
		if p%interval == 0 {
			path := filepath.Join(job.OutputDir, fmt.Sprintf("snapshot_%04d.jpg", snapshots))
			if err := writeJPEG(path, img); err != nil {
				log.Error("snapshot write failed", zap.String("path", path), zap.Error(err))
				s.bus.Publish(eventbus.SamplingFailedEvent{Stage: "write", Err: err})
				return
			}
			s.bus.Publish(eventbus.SnapshotWrittenEvent{Snapshot: domain.Snapshot{
				Index:    snapshots,
				Path:     path,
				Position: p,
			}})
			snapshots++
		}

		// Progress is only reportable when the container told us how many
		// frames to expect.
		if info.TotalFrames > 0 {
			s.bus.Publish(eventbus.SamplingProgressEvent{
				Fraction:  float64(p) / float64(info.TotalFrames),
				Position:  p,
				Snapshots: snapshots,
			})
		}
	}
}

// Interval converts the source frame rate and the desired output rate into
// the number of source frames advanced between two retained frames. A
// missing or bogus rate on either side falls back to keeping every frame
// rather than failing the run.
func Interval(actualRate, targetRate float64) int {
	if actualRate <= 0 || targetRate <= 0 {
		return 1
	}
	interval := int(math.Floor(actualRate / targetRate))
	if interval < 1 {
		return 1
	}
	return interval
}

func validate(job domain.SamplingJob) error {
	if job.VideoPath == "" {
		return ErrMissingVideo
	}
	if job.OutputDir == "" {
		return ErrMissingOutput
	}
	if job.TargetRate <= 0 {
		return ErrInvalidSpacing
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"framesnatch/internal/config"
	"framesnatch/internal/domain"
	"framesnatch/internal/eventbus"
	"framesnatch/internal/gallery"
	"framesnatch/internal/sampler"
	"framesnatch/internal/ui"
)

func main() {
	// Parse command line arguments
	var videoPath string
	var outputDir string
	var spacingSeconds float64
	flag.StringVar(&videoPath, "video", "", "Video file to sample frames from")
	flag.StringVar(&videoPath, "v", "", "Video file to sample frames from (shorthand)")
	flag.StringVar(&outputDir, "dir", "", "Snapshot directory to browse (and write into)")
	flag.StringVar(&outputDir, "d", "", "Snapshot directory to browse (shorthand)")
	flag.Float64Var(&spacingSeconds, "spacing", 0, "Seconds between snapshots; with -video, sampling starts immediately")
	flag.Parse()

	// A bare positional argument is treated as the video file
	if videoPath == "" && flag.NArg() > 0 {
		videoPath = flag.Arg(0)
	}

	// Set up logging. The TUI owns the terminal, so logs go to a file.
	logger, err := buildLogger("framesnatch.log")
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New(logger)

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		logger.Warn("could not load config, using defaults", zap.Error(err))
		cfg = config.DefaultConfig()
	}

	// Persist config changes coming from the UI
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			cfg.OutputDir = event.OutputDir
			cfg.Sampling.SpacingSeconds = event.SpacingSeconds
			if err := configSvc.Save(cfg); err != nil {
				logger.Error("failed to save config", zap.Error(err))
			}
		}
	})

	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Initialize services
	samplerSvc := sampler.NewService(bus, logger)
	_ = gallery.NewService(bus, logger) // Gallery service subscribes to events automatically

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, samplerSvc, absDir, videoPath, logger)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventSamplingStarted,
		eventbus.EventSamplingProgress,
		eventbus.EventSnapshotWritten,
		eventbus.EventSamplingCompleted,
		eventbus.EventSamplingFailed,
		eventbus.EventSamplingCanceled,
		eventbus.EventGalleryLoaded,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forward)
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Load the initial gallery listing
	bus.Publish(eventbus.GalleryRequestedEvent{Dir: absDir})

	// With both a video and a spacing on the command line, sampling starts
	// without further interaction.
	if videoPath != "" && spacingSeconds > 0 {
		job := domain.SamplingJob{
			VideoPath:  videoPath,
			OutputDir:  absDir,
			TargetRate: 1 / spacingSeconds,
		}
		if err := samplerSvc.Start(ctx, job); err != nil {
			logger.Error("could not start sampling", zap.Error(err))
			bus.Publish(eventbus.ErrorEvent{Message: "could not start sampling", Err: err})
		}
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	samplerSvc.Stop()
	close(eventChan)
	cancel()
}

// buildLogger creates a file-backed zap logger
func buildLogger(path string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}
	return zapCfg.Build()
}

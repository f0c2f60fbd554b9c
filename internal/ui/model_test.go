package ui

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"framesnatch/internal/config"
	"framesnatch/internal/domain"
	"framesnatch/internal/eventbus"
	"framesnatch/internal/sampler"
)

// stubBus records published events synchronously.
type stubBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *stubBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *stubBus) Subscribe(eventType eventbus.EventType, handler eventbus.EventHandler) func() {
	return func() {}
}

func (b *stubBus) published(eventType eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func newTestModel(t *testing.T, videoPath string) (*Model, *stubBus) {
	t.Helper()
	bus := &stubBus{}
	cfg := config.DefaultConfig()
	svc := sampler.NewService(bus, zap.NewNop())
	m := NewModel(bus, cfg, svc, "/snaps", videoPath, zap.NewNop())
	return m, bus
}

func loadImages(m *Model, n int) {
	images := make([]string, n)
	for i := range images {
		images[i] = "/snaps/img.jpg"
	}
	m.handleEvent(eventbus.GalleryLoadedEvent{Dir: "/snaps", Images: images})
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGalleryLoadedBuildsNavigator(t *testing.T) {
	m, _ := newTestModel(t, "")
	loadImages(m, 23)
	require.Equal(t, 23, m.Navigator().Len())

	// A listing for some other directory is ignored.
	m.handleEvent(eventbus.GalleryLoadedEvent{Dir: "/elsewhere", Images: nil})
	require.Equal(t, 23, m.Navigator().Len())
}

func TestBrowseKeysDriveNavigator(t *testing.T) {
	m, _ := newTestModel(t, "")
	loadImages(m, 23)

	m.Update(keyMsg("n"))
	require.Equal(t, 10, m.Navigator().Cursor())

	m.Update(keyMsg("p"))
	require.Equal(t, 0, m.Navigator().Cursor())

	m.Update(keyMsg("f"))
	require.Equal(t, 1, m.Navigator().Cursor())

	m.Update(keyMsg("b"))
	require.Equal(t, 0, m.Navigator().Cursor())

	m.Update(keyMsg("G"))
	require.Equal(t, 13, m.Navigator().Cursor())

	m.Update(keyMsg("g"))
	require.Equal(t, 0, m.Navigator().Cursor())
}

func TestReloadRequestsFreshListing(t *testing.T) {
	m, bus := newTestModel(t, "")
	loadImages(m, 5)

	m.Update(keyMsg("r"))
	require.Len(t, bus.published(eventbus.EventGalleryRequested), 1)
}

func TestBrowseViewShowsPositionSummary(t *testing.T) {
	m, _ := newTestModel(t, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	loadImages(m, 23)

	view := m.View()
	require.Contains(t, view, "Showing 1–10 of 23 (0%)")
}

func TestEmptyGalleryView(t *testing.T) {
	m, _ := newTestModel(t, "")
	loadImages(m, 0)

	require.Contains(t, m.View(), "No snapshots here yet")
}

func TestSampleKeyWithoutVideoIsAnError(t *testing.T) {
	m, bus := newTestModel(t, "")
	loadImages(m, 5)

	m.Update(keyMsg("s"))
	require.Equal(t, screenBrowse, m.screen)
	require.True(t, m.isError)
	require.Empty(t, bus.published(eventbus.EventSamplingRequested))
}

func TestSpacingInputStartsSampling(t *testing.T) {
	m, bus := newTestModel(t, "/videos/clip.mp4")
	loadImages(m, 0)

	m.Update(keyMsg("s"))
	require.Equal(t, screenInput, m.screen)

	m.Update(keyMsg("2"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	requested := bus.published(eventbus.EventSamplingRequested)
	require.Len(t, requested, 1)
	job := requested[0].(eventbus.SamplingRequestedEvent).Job
	require.Equal(t, "/videos/clip.mp4", job.VideoPath)
	require.Equal(t, "/snaps", job.OutputDir)
	require.InDelta(t, 0.5, job.TargetRate, 1e-9) // 2s spacing -> 0.5 frames/sec
	require.Equal(t, screenSampling, m.screen)
}

func TestSpacingInputRejectsNonPositive(t *testing.T) {
	m, bus := newTestModel(t, "/videos/clip.mp4")

	m.Update(keyMsg("s"))
	m.Update(keyMsg("0"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, screenInput, m.screen, "invalid spacing keeps the prompt open")
	require.True(t, m.isError)
	require.Empty(t, bus.published(eventbus.EventSamplingRequested))
}

func TestSamplingLifecycleEvents(t *testing.T) {
	m, bus := newTestModel(t, "/videos/clip.mp4")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.handleEvent(eventbus.SamplingStartedEvent{
		Job:  domain.SamplingJob{VideoPath: "/videos/clip.mp4"},
		Info: domain.VideoInfo{FrameRate: 30, TotalFrames: 300},
	})
	require.Equal(t, screenSampling, m.screen)
	require.True(t, m.sampling.Known)
	require.Contains(t, m.View(), "Sampling in progress")

	m.handleEvent(eventbus.SamplingProgressEvent{Fraction: 0.5, Position: 150, Snapshots: 5})
	require.InDelta(t, 0.5, m.sampling.Fraction, 1e-9)

	m.handleEvent(eventbus.SamplingCompletedEvent{OutputDir: "/snaps", Snapshots: 10})
	require.Equal(t, screenBrowse, m.screen)
	require.Len(t, bus.published(eventbus.EventGalleryRequested), 1,
		"completion triggers a fresh listing")
}

func TestUnknownTotalHidesProgressBar(t *testing.T) {
	m, _ := newTestModel(t, "/videos/clip.mp4")

	m.handleEvent(eventbus.SamplingStartedEvent{
		Job:  domain.SamplingJob{VideoPath: "/videos/clip.mp4"},
		Info: domain.VideoInfo{FrameRate: 0, TotalFrames: 0},
	})
	require.False(t, m.sampling.Known)
	require.Contains(t, m.View(), "progress unknown")
}

func TestSamplingFailureReturnsToBrowse(t *testing.T) {
	m, _ := newTestModel(t, "/videos/clip.mp4")

	m.handleEvent(eventbus.SamplingStartedEvent{Job: domain.SamplingJob{}})
	m.handleEvent(eventbus.SamplingFailedEvent{Stage: "read", Err: assertErr{}})

	require.Equal(t, screenBrowse, m.screen)
	require.True(t, m.isError)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

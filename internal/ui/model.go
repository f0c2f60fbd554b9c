package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"framesnatch/internal/config"
	"framesnatch/internal/domain"
	"framesnatch/internal/eventbus"
	"framesnatch/internal/gallery"
	"framesnatch/internal/sampler"
)

// screen identifies which of the three screens is active
type screen int

const (
	screenBrowse screen = iota
	screenSampling
	screenInput
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// samplingCanceledMsg is returned after a cancel request has been delivered
type samplingCanceledMsg struct{}

// keyMap defines the browse-screen key bindings
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Forward key.Binding
	Back    key.Binding
	Start   key.Binding
	End     key.Binding
	Reload  key.Binding
	Sample  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns the bindings shown in the one-line help
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Forward, k.Back, k.Sample, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped in columns
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Forward, k.Back},
		{k.Start, k.End, k.Reload},
		{k.Sample, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "right", "l", "pgdown"),
			key.WithHelp("n/→", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left", "h", "pgup"),
			key.WithHelp("p/←", "prev page"),
		),
		Forward: key.NewBinding(
			key.WithKeys("f", "]"),
			key.WithHelp("f", "jump fwd"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "["),
			key.WithHelp("b", "jump back"),
		),
		Start: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Sample: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sample"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	sampler sampler.Service
	logger  *zap.Logger

	screen screen
	width  int
	height int

	dir       string // snapshot directory being browsed
	videoPath string // video available for sampling, "" when browsing only
	navigator *gallery.Navigator

	progress     progress.Model
	spacingInput textinput.Model
	help         help.Model
	keys         keyMap

	sampling domain.SamplingProgress
	status   string
	isError  bool

	styles       *Styles
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	program      *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, samplerSvc sampler.Service, dir, videoPath string, logger *zap.Logger) *Model {
	input := textinput.New()
	input.Placeholder = strconv.Itoa(cfg.Sampling.SpacingSeconds)
	input.CharLimit = 6
	input.Width = 10

	return &Model{
		bus:          bus,
		config:       cfg,
		sampler:      samplerSvc,
		logger:       logger,
		screen:       screenBrowse,
		dir:          dir,
		videoPath:    videoPath,
		navigator:    gallery.NewNavigator(nil, cfg.UISettings.PageSize),
		progress:     progress.New(progress.WithDefaultGradient()),
		spacingInput: input,
		help:         help.New(),
		keys:         defaultKeyMap(),
		styles:       NewStyles(),
		helpRenderer: NewHelpRenderer(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 8
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("help pager failed: %v", msg.err))
		}
		return m, nil

	case samplingCanceledMsg:
		return m, nil
	}

	if m.screen == screenInput {
		var cmd tea.Cmd
		m.spacingInput, cmd = m.spacingInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, regardless of screen
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenInput:
		return m.handleInputKey(msg)
	case screenSampling:
		return m.handleSamplingKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.navigator.Next()
	case key.Matches(msg, m.keys.Prev):
		m.navigator.Previous()
	case key.Matches(msg, m.keys.Forward):
		m.navigator.JumpForward()
	case key.Matches(msg, m.keys.Back):
		m.navigator.JumpBackward()
	case key.Matches(msg, m.keys.Start):
		m.navigator.JumpToStart()
	case key.Matches(msg, m.keys.End):
		m.navigator.JumpToEnd()
	case key.Matches(msg, m.keys.Reload):
		m.setInfo("reloading…")
		m.bus.Publish(eventbus.GalleryRequestedEvent{Dir: m.dir})
	case key.Matches(msg, m.keys.Sample):
		if m.videoPath == "" {
			m.setError("no video loaded; start with -video to sample")
			return m, nil
		}
		m.screen = screenInput
		m.spacingInput.SetValue("")
		return m, m.spacingInput.Focus()
	case key.Matches(msg, m.keys.Help):
		return m, m.showHelpCmd()
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenBrowse
		m.spacingInput.Blur()
		return m, nil
	case "enter":
		value := m.spacingInput.Value()
		if value == "" {
			value = strconv.Itoa(m.config.Sampling.SpacingSeconds)
		}
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil || seconds <= 0 {
			m.setError("spacing must be a positive number of seconds")
			return m, nil
		}

		m.spacingInput.Blur()
		m.screen = screenSampling
		m.sampling = domain.SamplingProgress{}
		m.setInfo("starting sampling…")
		m.bus.Publish(eventbus.SamplingRequestedEvent{Job: domain.SamplingJob{
			VideoPath:  m.videoPath,
			OutputDir:  m.dir,
			TargetRate: 1 / seconds,
		}})
		return m, nil
	}

	var cmd tea.Cmd
	m.spacingInput, cmd = m.spacingInput.Update(msg)
	return m, cmd
}

func (m *Model) handleSamplingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.setInfo("canceling…")
		// Stop blocks until the worker winds down, so run it off the UI loop.
		return m, func() tea.Msg {
			m.sampler.Stop()
			return samplingCanceledMsg{}
		}
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.SamplingStartedEvent:
		m.screen = screenSampling
		m.sampling = domain.SamplingProgress{
			IsSampling: true,
			Known:      e.Info.TotalFrames > 0,
		}
		m.setInfo(fmt.Sprintf("sampling %s", e.Job.VideoPath))

	case eventbus.SamplingProgressEvent:
		m.sampling.Fraction = e.Fraction
		m.sampling.Snapshots = e.Snapshots

	case eventbus.SnapshotWrittenEvent:
		m.sampling.Snapshots = e.Snapshot.Index + 1

	case eventbus.SamplingCompletedEvent:
		m.screen = screenBrowse
		m.sampling.IsSampling = false
		m.setSuccess(fmt.Sprintf("sampling finished: %d snapshots", e.Snapshots))
		m.bus.Publish(eventbus.GalleryRequestedEvent{Dir: m.dir})

	case eventbus.SamplingFailedEvent:
		m.screen = screenBrowse
		m.sampling.IsSampling = false
		m.setError(fmt.Sprintf("sampling failed (%s): %v", e.Stage, e.Err))
		m.bus.Publish(eventbus.GalleryRequestedEvent{Dir: m.dir})

	case eventbus.SamplingCanceledEvent:
		m.screen = screenBrowse
		m.sampling.IsSampling = false
		m.setInfo(fmt.Sprintf("sampling canceled, %d snapshots kept", e.Snapshots))
		m.bus.Publish(eventbus.GalleryRequestedEvent{Dir: m.dir})

	case eventbus.GalleryLoadedEvent:
		if e.Dir == m.dir {
			m.navigator = gallery.NewNavigator(e.Images, m.config.UISettings.PageSize)
			if !m.sampling.IsSampling {
				m.setInfo(fmt.Sprintf("%d images", len(e.Images)))
			}
		}

	case eventbus.ErrorEvent:
		m.setError(e.Message)
	}

	return m, nil
}

func (m *Model) showHelpCmd() tea.Cmd {
	return func() tea.Msg {
		if m.helpOps == nil {
			return helpPagerMsg{err: fmt.Errorf("program not set")}
		}
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(m.helpRenderer.RenderHelpContent())}
	}
}

func (m *Model) setInfo(s string)    { m.status, m.isError = s, false }
func (m *Model) setError(s string)   { m.status, m.isError = s, true }
func (m *Model) setSuccess(s string) { m.status, m.isError = s, false }

// Navigator exposes the current navigator for tests
func (m *Model) Navigator() *gallery.Navigator { return m.navigator }

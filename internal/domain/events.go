package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSamplingStarted   EventType = "SamplingStarted"
	EventSamplingProgress  EventType = "SamplingProgress"
	EventSnapshotWritten   EventType = "SnapshotWritten"
	EventSamplingCompleted EventType = "SamplingCompleted"
	EventSamplingFailed    EventType = "SamplingFailed"
	EventSamplingCanceled  EventType = "SamplingCanceled"
	EventSamplingRequested EventType = "SamplingRequested"
	EventGalleryLoaded     EventType = "GalleryLoaded"
	EventGalleryRequested  EventType = "GalleryRequested"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
	EventConfigChanged     EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SamplingStartedEvent is emitted when a sampling run begins
type SamplingStartedEvent struct {
	Job  SamplingJob
	Info VideoInfo
}

func (e SamplingStartedEvent) Type() EventType { return EventSamplingStarted }

// SamplingProgressEvent is emitted after each decoded frame when the source
// reports a usable total frame count. Fraction is monotonically
// non-decreasing within a run.
type SamplingProgressEvent struct {
	Fraction  float64
	Position  int
	Snapshots int
}

func (e SamplingProgressEvent) Type() EventType { return EventSamplingProgress }

// SnapshotWrittenEvent is emitted after each snapshot file is persisted
type SnapshotWrittenEvent struct {
	Snapshot Snapshot
}

func (e SnapshotWrittenEvent) Type() EventType { return EventSnapshotWritten }

// SamplingCompletedEvent is emitted when the source is exhausted normally
type SamplingCompletedEvent struct {
	OutputDir string
	Snapshots int
}

func (e SamplingCompletedEvent) Type() EventType { return EventSamplingCompleted }

// SamplingFailedEvent is emitted when a run aborts on an open, read or
// write error. Partial output files are left in place.
type SamplingFailedEvent struct {
	Stage string // "open", "read" or "write"
	Err   error
}

func (e SamplingFailedEvent) Type() EventType { return EventSamplingFailed }

// SamplingCanceledEvent is emitted when a run is stopped cooperatively.
// No completion event follows it.
type SamplingCanceledEvent struct {
	Snapshots int
}

func (e SamplingCanceledEvent) Type() EventType { return EventSamplingCanceled }

// SamplingRequestedEvent is emitted to request a new sampling run
type SamplingRequestedEvent struct {
	Job SamplingJob
}

func (e SamplingRequestedEvent) Type() EventType { return EventSamplingRequested }

// GalleryLoadedEvent is emitted when an output directory listing is ready
type GalleryLoadedEvent struct {
	Dir    string
	Images []string
}

func (e GalleryLoadedEvent) Type() EventType { return EventGalleryLoaded }

// GalleryRequestedEvent is emitted to request a fresh directory listing
type GalleryRequestedEvent struct {
	Dir string
}

func (e GalleryRequestedEvent) Type() EventType { return EventGalleryRequested }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	OutputDir      string
	SpacingSeconds int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	OutputDir      string
	SpacingSeconds int
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

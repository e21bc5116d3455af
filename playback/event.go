package playback

// EventKind tells subscribers what happened to a controller.
type EventKind int

const (
	// Moved is emitted whenever the cursor changes.
	Moved EventKind = iota
	// Started is emitted when playback begins.
	Started
	// Stopped is emitted when playback is stopped explicitly.
	Stopped
	// Finished is emitted when playback stops because the cursor reached the end of the range.
	Finished
)

func (k EventKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event describes a controller change.
type Event struct {
	Kind     EventKind
	Cursor   int
	Previous int
	Playing  bool
}

// Snapshot is a consistent view of a controller.
type Snapshot struct {
	Cursor  int
	Range   Range
	Playing bool
}

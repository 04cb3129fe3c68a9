package watcher

import "context"

// Op identifies what happened to a watched path.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
)

// String returns a short label for logging.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event is a single debounced filesystem change.
type Event struct {
	Path string
	Op   Op
}

// FileWatcher monitors a directory tree for changes with debouncing and
// pause/resume support. Events are delivered in batches, one entry per path,
// each carrying create/write/remove granularity.
type FileWatcher interface {
	// Start begins watching, calling callback with debounced event batches.
	Start(ctx context.Context, callback func(events []Event)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
	Resume()
}

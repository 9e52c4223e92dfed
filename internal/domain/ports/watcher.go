package ports

import (
	"context"
	"time"
)

// FileWatcher watches a single deck file for changes.
type FileWatcher interface {
	// Watch starts watching the file at path. Events arrive on the
	// returned channel until the context is cancelled or Stop is called.
	Watch(ctx context.Context, path string) (<-chan FileChangeEvent, error)
	// Stop stops the watcher and closes the event channel.
	Stop() error
}

// FileChangeEvent describes an observed change to the watched file.
type FileChangeEvent struct {
	Path      string
	Type      ChangeType
	Timestamp time.Time
}

// ChangeType is the kind of change observed.
type ChangeType int

const (
	// Modified indicates the file content changed.
	Modified ChangeType = iota
	// Deleted indicates the file disappeared.
	Deleted
)

func (c ChangeType) String() string {
	switch c {
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

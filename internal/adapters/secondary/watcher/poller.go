package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deckmd/deckmd/internal/domain/ports"
)

// PollingWatcher watches one deck file by polling. A checksum is only
// computed when size or mtime changed, so the steady state is a cheap
// stat per tick.
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration

	mu      sync.Mutex
	state   *fileState
	events  chan ports.FileChangeEvent
	stopped bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

type fileState struct {
	size     int64
	modTime  time.Time
	checksum string
}

// NewPollingWatcher creates a polling watcher with the given tick interval
// and debounce window.
func NewPollingWatcher(interval, debounce time.Duration) *PollingWatcher {
	return &PollingWatcher{
		interval: interval,
		debounce: debounce,
		events:   make(chan ports.FileChangeEvent, 10),
		stopCh:   make(chan struct{}),
	}
}

// Watch starts watching the file at path.
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	state, err := w.snapshot(absPath)
	if err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	w.mu.Lock()
	w.state = state
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	return w.events, nil
}

// Stop stops the watcher and closes the event channel.
func (w *PollingWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	return nil
}

func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			changeType, changed, err := w.check(path)
			if err != nil {
				log.Printf("warning: watch %s: %v", path, err)
				continue
			}
			if !changed || time.Since(lastEvent) < w.debounce {
				continue
			}

			event := ports.FileChangeEvent{
				Path:      path,
				Type:      changeType,
				Timestamp: time.Now(),
			}
			select {
			case w.events <- event:
				lastEvent = time.Now()
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// check compares the current file state against the last snapshot.
func (w *PollingWatcher) check(path string) (ports.ChangeType, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.mu.Lock()
			known := w.state != nil
			w.state = nil
			w.mu.Unlock()
			return ports.Deleted, known, nil
		}
		return ports.Modified, false, fmt.Errorf("stat: %w", err)
	}

	w.mu.Lock()
	prev := w.state
	w.mu.Unlock()

	if prev != nil && prev.size == info.Size() && prev.modTime.Equal(info.ModTime()) {
		return ports.Modified, false, nil
	}

	state, err := w.snapshot(path)
	if err != nil {
		return ports.Modified, false, err
	}

	changed := prev == nil || prev.checksum != state.checksum
	w.mu.Lock()
	w.state = state
	w.mu.Unlock()

	return ports.Modified, changed, nil
}

func (w *PollingWatcher) snapshot(path string) (*fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	file, err := os.Open(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return nil, err
	}

	return &fileState{
		size:     info.Size(),
		modTime:  info.ModTime(),
		checksum: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// Ensure PollingWatcher implements ports.FileWatcher.
var _ ports.FileWatcher = (*PollingWatcher)(nil)

package watcher

import (
	"github.com/fsnotify/fsnotify"
)

// Event reports that an open file changed on disk
type Event struct {
	Path string
}

// Watcher watches the files backing open documents and reports external
// modifications, so the UI can offer a reload instead of silently diverging
// from disk.
type Watcher struct {
	fw     *fsnotify.Watcher
	events chan Event
	done   chan struct{}
}

// New creates a watcher and starts its forwarding loop
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fw:     fw,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Add starts watching a file path
func (w *Watcher) Add(path string) error {
	return w.fw.Add(path)
}

// Remove stops watching a file path. Removing a path that is not watched
// is not an error worth surfacing.
func (w *Watcher) Remove(path string) {
	_ = w.fw.Remove(path)
}

// Events returns the channel of external-change notifications
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			// Writes and renames both show up as content changes; editors
			// that save via rename emit Create on the watched path
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			select {
			case w.events <- Event{Path: ev.Name}:
			default:
				// Drop when the UI is not draining; the next write will fire again
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

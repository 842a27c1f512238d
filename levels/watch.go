package levels

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind says what a watched change refers to, so consumers can reload
// just the piece that changed.
type EventKind int

const (
	// KindLevel is a level spec change (.yaml/.yml): the world needs a rebuild.
	KindLevel EventKind = iota
	// KindScript is a trigger script change (.tengo): only script triggers
	// need recompiling.
	KindScript
)

// Event is one debounced file change under a watched directory.
type Event struct {
	Path string
	Kind EventKind
}

// debounceWindow collapses the create/write bursts editors produce on save
// into a single event per path.
const debounceWindow = 100 * time.Millisecond

// Watcher reports changed level specs and trigger scripts so a running game
// can rebuild its world. Events are debounced per path; everything that
// isn't a yaml spec or tengo script is filtered out.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errs    chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		events:  make(chan Event, 16),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Events delivers debounced level and script changes. The channel is closed
// by the watch goroutine once the watcher shuts down.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors delivers watch failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run owns the outbound channels: only it sends on them and only it closes
// them, so Close can never race a pending send.
func (w *Watcher) run() {
	defer close(w.events)
	defer close(w.errs)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, watched := classify(event.Name)
			if !watched {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < debounceWindow {
				continue
			}
			last[event.Name] = now
			select {
			case w.events <- Event{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// classify maps a changed path to the kind of reload it calls for. The
// second result is false for files the watcher doesn't care about.
func classify(path string) (EventKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindLevel, true
	case ".tengo":
		return KindScript, true
	default:
		return 0, false
	}
}

package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow swallows the bursts of writes editors emit for one save.
const debounceWindow = 100 * time.Millisecond

// reloadExts are the file extensions worth reporting: tuning files and AI
// scripts.
var reloadExts = map[string]bool{
	".yaml":  true,
	".yml":   true,
	".tengo": true,
}

// Watcher reports changes to tuning and script files so the host can
// reload them between frames. Events and Errors are closed when the
// watcher shuts down, whether by Close or by the underlying fsnotify
// watcher failing.
type Watcher struct {
	fsw     *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	lastSeen map[string]time.Time
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:      fsw,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		lastSeen: make(map[string]time.Time),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Safe to call more than once; the goroutine
// owns the outgoing channels and closes them on its way out.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.wantEvent(event) {
				continue
			}
			// Never block on a full buffer past shutdown: the host may
			// stop draining before it calls Close.
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// wantEvent filters for reloadable files and debounces per path.
func (w *Watcher) wantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if !reloadExts[strings.ToLower(filepath.Ext(event.Name))] {
		return false
	}
	now := time.Now()
	if t, ok := w.lastSeen[event.Name]; ok && now.Sub(t) < debounceWindow {
		return false
	}
	w.lastSeen[event.Name] = now
	return true
}

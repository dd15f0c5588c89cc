package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("config: watcher closed")

// defaultDebounce coalesces editor write bursts into one reload.
const defaultDebounce = 100 * time.Millisecond

// ReloadFunc is called with the freshly loaded configuration after the
// watched file changes. Load errors are reported through the error
// callback instead and keep the previous configuration in effect.
type ReloadFunc func(*Config)

// ErrorFunc is called when a reload attempt fails.
type ErrorFunc func(error)

// Watcher reloads the configuration file when it changes on disk.
type Watcher struct {
	mu       sync.Mutex
	path     string
	fsw      *fsnotify.Watcher
	onReload ReloadFunc
	onError  ErrorFunc
	debounce time.Duration
	timer    *time.Timer
	closed   bool
	done     chan struct{}
}

// Watch starts watching the config file at path. The parent directory
// is watched so the file can appear, be replaced atomically, or be
// recreated after deletion.
func Watch(path string, onReload ReloadFunc, onError ErrorFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		onReload: onReload,
		onError:  onError,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. No reload or error callback runs after
// Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	err := w.fsw.Close()
	w.mu.Unlock()

	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

// scheduleReload debounces rapid event bursts into a single reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload runs on the debounce timer goroutine. The callbacks fire
// under the lock so that Close, which also takes the lock, cannot
// return while one is in flight; after Close returns no callback runs.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if err != nil {
		w.report(err)
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

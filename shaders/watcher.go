package shaders

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports when any of a set of shader source files is written or replaced.
//
// The watcher goroutine only signals. Rebuilding the program must happen on the
// thread owning the graphics context, usually by polling Changed once per frame.
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string]struct{}
	changed chan struct{}
	done    chan struct{}
	logger  Logger
}

// NewWatcher watches the directories holding paths, since many editors save by
// replacing the file rather than writing to it
func NewWatcher(logger Logger, paths ...string) (*Watcher, error) {

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader file watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]struct{}, len(paths)),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		logger:  logger,
	}

	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {

		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve shader path '%s': %w", p, err)
		}

		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch shader directory '%s': %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

// Changed receives a value after one or more watched files changed.
// Bursts of events are coalesced into a single notification.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// HasChanged is a non-blocking poll of Changed
func (w *Watcher) HasChanged() bool {

	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {

	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			if _, ok := w.files[abs]; !ok {
				continue
			}

			select {
			case w.changed <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Shader file watcher error: %v", err)
		}
	}
}

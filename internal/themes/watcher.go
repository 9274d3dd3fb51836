package themes

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/anya"
)

// Reload is one result of re-reading a watched theme file.
type Reload struct {
	Themes map[string]anya.Theme
	Err    error
}

// Watcher watches a theme file and delivers parsed reloads on a channel.
// The game loop drains Updates at the top of each tick, so themes are only
// ever applied on the loop goroutine.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *slog.Logger
	updates chan Reload
	done    chan struct{}

	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher for the theme file at path.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: w,
		path:    path,
		logger:  logger,
		updates: make(chan Reload, 1),
		done:    make(chan struct{}),
	}, nil
}

// Updates returns the channel reloads are sent on. Only the latest pending
// reload is kept.
func (w *Watcher) Updates() <-chan Reload {
	return w.updates
}

// Start begins watching until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory; editors often replace the file instead of writing it.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.watch(ctx)
	w.logger.Debug("theme watcher started", "path", w.path)
	return nil
}

func (w *Watcher) watch(ctx context.Context) {
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("theme file changed, reloading", "path", w.path)
				themes, err := Load(w.path)
				if err != nil {
					w.logger.Warn("failed to reload themes", "path", w.path, "error", err)
				}
				w.send(Reload{Themes: themes, Err: err})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)

		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}

// send replaces any reload the loop has not picked up yet.
func (w *Watcher) send(r Reload) {
	for {
		select {
		case w.updates <- r:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return w.watcher.Close()
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}

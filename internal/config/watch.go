package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/x-splitmon/internal/bus"
	"github.com/fsnotify/fsnotify"
)

// EventChanged is published on the bus after the config file changes on
// disk.
type EventChanged struct {
	Config Config
}

const watchDebounce = 200 * time.Millisecond

func NewWatcher(filePath string, store Store) Watcher {
	return Watcher{
		filePath: filePath,
		store:    store,
	}
}

// Watcher publishes EventChanged when the config file is rewritten. It
// watches the parent directory because editors and writeAtomic replace the
// file by rename, which would drop a watch on the file itself.
type Watcher struct {
	filePath string
	store    Store
}

func (w Watcher) String() string {
	return "config.Watcher"
}

func (w Watcher) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}

	base := filepath.Base(w.filePath)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Failed to watch config file", "file", w.filePath, "error", err)
		case <-debounce.C:
			cfg, err := w.store.GetConfig()
			if err != nil {
				slog.Error("Failed to read config file", "file", w.filePath, "error", err)
				continue
			}

			slog.Info("Config file changed", "file", w.filePath)
			bus.Publish(EventChanged{Config: cfg})
		}
	}
}

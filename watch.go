package lessonmap

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentstation/lessonmap/pkg/errors"
	"github.com/agentstation/lessonmap/pkg/logging"
)

// Watch reloads the catalog whenever the document changes on disk, until ctx
// ends. The storage root is watched rather than the document itself, since
// saves replace the file by rename. Bursts of events are coalesced.
func (c *client) Watch(ctx context.Context) error {
	ctx = c.context(ctx)
	logger := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapIO("watch", c.store.Root(), err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(c.store.Root()); err != nil {
		return errors.WrapIO("watch", c.store.Root(), err)
	}

	target := filepath.Clean(c.store.MetadataPath())
	timer := time.NewTimer(c.options.debounce)
	timer.Stop()

	logger.Debug().Str("path", target).Msg("Watching catalog")
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) {
				continue
			}
			timer.Reset(c.options.debounce)

		case <-timer.C:
			if err := c.Reload(ctx); err != nil {
				logger.Warn().Err(err).Msg("Reload after file change failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Catalog watcher error")
		}
	}
}

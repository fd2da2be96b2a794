// Implements external-change detection for workbook files.

package filegrid

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the workbook whenever the file changes on disk and reports
// each newly loaded revision on the returned channel. Saves made through
// this Store also touch the file; those reloads are harmless no-ops since
// the in-memory state already matches. The watcher closes the channel when
// ctx is cancelled.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(s.path); err != nil {
		_ = w.Close()
		return nil, err
	}
	ch := make(chan string, 1)
	go func() {
		defer func() { _ = w.Close() }()
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				prev := s.Revision()
				if err := s.load(); err != nil {
					slog.WarnContext(ctx, "Failed to reload workbook", "path", s.path, "err", err)
					continue
				}
				rev := s.Revision()
				if rev == prev {
					continue
				}
				select {
				case ch <- rev:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching workbook", "path", s.path, "err", err)
			}
		}
	}()
	return ch, nil
}

//go:build !linux

package hotplug

import (
	"context"
	"log/slog"

	"keygrip/internal/logging"
)

// Watcher is inert on platforms without udev; adapter changes require
// explicit invalidation there.
type Watcher struct {
	logger *slog.Logger
}

// NewWatcher returns a watcher that never fires notify.
func NewWatcher(logger *slog.Logger, notify func(), opts ...Option) *Watcher {
	_ = newSettings(opts)
	_ = notify
	return &Watcher{logger: logging.NewComponentLogger(logger, "hotplug")}
}

// Start reports the missing capability and succeeds as a no-op.
func (w *Watcher) Start(context.Context) error {
	if w == nil {
		return nil
	}
	w.logger.Info("display adapter watching is not supported on this platform")
	return nil
}

// Stop is a no-op.
func (w *Watcher) Stop() {}

// Running always reports false.
func (w *Watcher) Running() bool { return false }

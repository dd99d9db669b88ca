//go:build linux

package hotplug

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"keygrip/internal/logging"
)

// Watcher listens for udev netlink events on the DRM subsystem and reports
// display-adapter topology changes. This is how a long-lived process learns
// that a cached capability snapshot went stale without polling sysfs.
type Watcher struct {
	logger   *slog.Logger
	notify   func()
	debounce time.Duration

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// NewWatcher creates a watcher that calls notify after each debounced burst
// of display-adapter events.
func NewWatcher(logger *slog.Logger, notify func(), opts ...Option) *Watcher {
	s := newSettings(opts)
	return &Watcher{
		logger:   logging.NewComponentLogger(logger, "hotplug"),
		notify:   notify,
		debounce: s.debounce,
	}
}

// Start begins listening for udev netlink events. A failed netlink connect
// is non-fatal: the watcher logs the degradation and callers fall back to
// explicit invalidation.
func (w *Watcher) Start(ctx context.Context) error {
	if w == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		w.logger.Warn("failed to connect to netlink socket; adapter changes will not be noticed automatically",
			logging.Error(err))
		return nil
	}

	w.conn = conn
	w.quit = make(chan struct{})
	w.running = true

	// Hand the quit channel to the goroutine so it never reads w.quit
	// without the lock.
	quit := w.quit
	go w.watchLoop(ctx, quit)

	w.logger.Info("display adapter watcher started",
		logging.Duration("debounce", w.debounce))
	return nil
}

// Stop shuts the watcher down. Safe on nil and unstarted watchers.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	if w.quit != nil {
		close(w.quit)
		w.quit = nil
	}
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
	w.running = false

	w.logger.Info("display adapter watcher stopped")
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, buildMatcher())

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			w.logger.Debug("display adapter event",
				logging.String("action", string(uevent.Action)),
				logging.String("kobj", uevent.KObj))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		case <-pending:
			timer = nil
			pending = nil
			w.logger.Info("display adapter topology changed")
			if w.notify != nil {
				w.notify()
			}
		case err := <-errs:
			w.logger.Warn("display adapter watcher error", logging.Error(err))
		}
	}
}

// buildMatcher accepts device add and remove events on the DRM subsystem.
// Connector "change" events (a monitor being plugged in) are deliberately
// excluded: they do not alter encode capability.
func buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "drm",
		},
	})
	return rules
}

//go:build linux

package hotplug

import (
	"context"
	"testing"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"keygrip/internal/logging"
)

func TestBuildMatcher(t *testing.T) {
	matcher := buildMatcher()
	if matcher == nil {
		t.Fatal("expected non-nil matcher")
	}

	addEvent := netlink.UEvent{
		Action: netlink.ADD,
		Env:    map[string]string{"SUBSYSTEM": "drm"},
	}
	if !matcher.Evaluate(addEvent) {
		t.Error("expected matcher to accept drm add event")
	}

	removeEvent := netlink.UEvent{
		Action: netlink.REMOVE,
		Env:    map[string]string{"SUBSYSTEM": "drm"},
	}
	if !matcher.Evaluate(removeEvent) {
		t.Error("expected matcher to accept drm remove event")
	}

	connectorChange := netlink.UEvent{
		Action: netlink.CHANGE,
		Env:    map[string]string{"SUBSYSTEM": "drm", "HOTPLUG": "1"},
	}
	if matcher.Evaluate(connectorChange) {
		t.Error("connector change events must not trigger invalidation")
	}

	blockEvent := netlink.UEvent{
		Action: netlink.ADD,
		Env:    map[string]string{"SUBSYSTEM": "block"},
	}
	if matcher.Evaluate(blockEvent) {
		t.Error("expected matcher to reject non-drm subsystems")
	}
}

func TestWatcherLifecycleIsNilSafe(t *testing.T) {
	var w *Watcher
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start on nil watcher: %v", err)
	}
	w.Stop()
	if w.Running() {
		t.Error("nil watcher cannot be running")
	}
}

func TestWatcherStopBeforeStart(t *testing.T) {
	w := NewWatcher(logging.NewNop(), func() {})
	w.Stop()
	w.Stop()
	if w.Running() {
		t.Error("unstarted watcher reports running")
	}
}

func TestWatcherStartWithoutPrivileges(t *testing.T) {
	// Netlink connect usually fails in test sandboxes; Start must treat that
	// as degradation, not an error.
	w := NewWatcher(logging.NewNop(), func() {})
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()
}

func TestWithDebounce(t *testing.T) {
	w := NewWatcher(logging.NewNop(), func() {}, WithDebounce(50*time.Millisecond))
	if w.debounce != 50*time.Millisecond {
		t.Fatalf("debounce = %v, want 50ms", w.debounce)
	}

	w = NewWatcher(logging.NewNop(), func() {}, WithDebounce(-1))
	if w.debounce != defaultDebounce {
		t.Fatalf("debounce = %v, want default %v", w.debounce, defaultDebounce)
	}
}

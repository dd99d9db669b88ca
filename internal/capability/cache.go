package capability

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"keygrip/internal/logging"
	"keygrip/internal/services"
)

// ErrPlatformUnsupported reports that capability detection has no defined
// semantics on this operating system. It is the only error GetCapabilities
// propagates; everything else degrades into the snapshot.
var ErrPlatformUnsupported = fmt.Errorf("%w: no capability detection on this platform", services.ErrUnsupported)

// SnapshotDetector produces a capability snapshot. Detection must not fail;
// degradation is recorded inside the snapshot itself.
type SnapshotDetector interface {
	Detect(ctx context.Context) *Snapshot
}

// Cache holds the process-wide capability snapshot. Detection runs lazily on
// the first request and exactly once, no matter how many goroutines ask
// concurrently; later reads are lock-free.
type Cache struct {
	logger   *slog.Logger
	detector SnapshotDetector
	goos     string

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// CacheOption adjusts cache construction.
type CacheOption func(*Cache)

// WithPlatform overrides the operating system the platform gate evaluates.
func WithPlatform(goos string) CacheOption {
	return func(c *Cache) {
		if goos != "" {
			c.goos = goos
		}
	}
}

// NewCache constructs an empty cache around the given detector.
func NewCache(logger *slog.Logger, detector SnapshotDetector, opts ...CacheOption) *Cache {
	cache := &Cache{
		logger:   logging.NewComponentLogger(logger, "capability"),
		detector: detector,
		goos:     runtime.GOOS,
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get returns the cached snapshot, running the detection pass first if no
// snapshot exists yet. Concurrent first callers share a single pass: one
// detects while the rest block, then everyone receives the same pointer.
//
// The platform gate is checked before anything else and is the only failure
// mode; on a supported platform Get always returns a snapshot.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if !platformSupported(c.goos) {
		return nil, services.Wrap(ErrPlatformUnsupported, "capability", "get", c.goos, nil)
	}

	if snapshot := c.current.Load(); snapshot != nil {
		return snapshot, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if snapshot := c.current.Load(); snapshot != nil {
		return snapshot, nil
	}

	snapshot := c.detector.Detect(ctx)
	c.current.Store(snapshot)
	return snapshot, nil
}

// Invalidate discards the cached snapshot so the next Get runs a fresh
// detection pass. Callers holding the old snapshot keep a consistent view;
// they simply observe pre-invalidation state.
func (c *Cache) Invalidate() {
	if c.current.Swap(nil) != nil {
		c.logger.Info("capability snapshot invalidated")
	}
}

// platformSupported reports whether detection semantics are defined for the
// operating system. Inventory sources exist for linux (sysfs and DRM) and
// windows (WMI); everything else fails the gate.
func platformSupported(goos string) bool {
	switch goos {
	case "linux", "windows":
		return true
	default:
		return false
	}
}

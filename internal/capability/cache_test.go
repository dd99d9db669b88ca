package capability_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"keygrip/internal/capability"
	"keygrip/internal/logging"
	"keygrip/internal/services"
)

type countingDetector struct {
	calls atomic.Int32
	delay time.Duration
}

func (d *countingDetector) Detect(context.Context) *capability.Snapshot {
	n := d.calls.Add(1)
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	return &capability.Snapshot{
		ProbeID:    fmt.Sprintf("probe-%d", n),
		DetectedAt: time.Now().UTC(),
	}
}

func TestGetRunsDetectionOnceUnderConcurrency(t *testing.T) {
	detector := &countingDetector{delay: 20 * time.Millisecond}
	cache := capability.NewCache(logging.NewNop(), detector, capability.WithPlatform("linux"))

	const callers = 16
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		snaps = make([]*capability.Snapshot, callers)
		errs  = make([]error, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			snaps[i], errs[i] = cache.Get(context.Background())
		}(i)
	}
	close(start)
	wg.Wait()

	if got := detector.calls.Load(); got != 1 {
		t.Fatalf("detection ran %d times, want exactly 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if snaps[i] != snaps[0] {
			t.Fatalf("caller %d observed a different snapshot pointer", i)
		}
	}
}

func TestGetReusesSnapshotAcrossCalls(t *testing.T) {
	detector := &countingDetector{}
	cache := capability.NewCache(logging.NewNop(), detector, capability.WithPlatform("linux"))

	first, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first != second {
		t.Fatal("snapshot pointer changed between calls")
	}
	if got := detector.calls.Load(); got != 1 {
		t.Fatalf("detection ran %d times, want 1", got)
	}
}

func TestInvalidateForcesFreshDetection(t *testing.T) {
	detector := &countingDetector{}
	cache := capability.NewCache(logging.NewNop(), detector, capability.WithPlatform("linux"))

	first, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	cache.Invalidate()
	second, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first == second {
		t.Fatal("expected a new snapshot after invalidation")
	}
	if first.ProbeID == second.ProbeID {
		t.Fatal("expected a new probe id after invalidation")
	}
	if got := detector.calls.Load(); got != 2 {
		t.Fatalf("detection ran %d times, want 2", got)
	}
}

func TestInvalidateOnEmptyCacheIsHarmless(t *testing.T) {
	detector := &countingDetector{}
	cache := capability.NewCache(logging.NewNop(), detector, capability.WithPlatform("windows"))

	cache.Invalidate()
	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("Get after empty invalidate: %v", err)
	}
	if got := detector.calls.Load(); got != 1 {
		t.Fatalf("detection ran %d times, want 1", got)
	}
}

func TestGetFailsFastOnUnsupportedPlatform(t *testing.T) {
	detector := &countingDetector{}
	cache := capability.NewCache(logging.NewNop(), detector, capability.WithPlatform("plan9"))

	_, err := cache.Get(context.Background())
	if !errors.Is(err, capability.ErrPlatformUnsupported) {
		t.Fatalf("Get error = %v, want ErrPlatformUnsupported", err)
	}
	if !errors.Is(err, services.ErrUnsupported) {
		t.Fatalf("Get error = %v, want to unwrap to ErrUnsupported", err)
	}
	if got := detector.calls.Load(); got != 0 {
		t.Fatalf("detection ran %d times despite platform gate", got)
	}
}

package hotplug

import "time"

// defaultDebounce absorbs the burst of uevents one physical change emits.
// Driver rebinds and eGPU attach produce several add/remove events within a
// few hundred milliseconds; one notification per burst is enough.
const defaultDebounce = 300 * time.Millisecond

// Option adjusts watcher construction.
type Option func(*settings)

type settings struct {
	debounce time.Duration
}

// WithDebounce overrides how long the watcher coalesces adapter events
// before notifying.
func WithDebounce(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.debounce = d
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{debounce: defaultDebounce}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

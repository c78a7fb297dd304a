package workload

import (
	"time"
)

const (
	defaultInitialBackoff = 200 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
)

// BackoffPolicy describes how long the Driver waits after a failed cycle
// before ticking again. Zero values are treated as "use defaults".
type BackoffPolicy struct {
	// Initial is the first backoff duration.
	Initial time.Duration

	// Max is the cap for backoff duration.
	Max time.Duration
}

// DefaultBackoffPolicy returns the policy used when none is configured.
func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		Initial: defaultInitialBackoff,
		Max:     defaultMaxBackoff,
	}
}

func (p *BackoffPolicy) fillDefaults() {
	if p.Initial <= 0 {
		p.Initial = defaultInitialBackoff
	}
	if p.Max <= 0 {
		p.Max = defaultMaxBackoff
	}
	if p.Max < p.Initial {
		p.Max = p.Initial
	}
}

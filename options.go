package workload

import (
	"time"
)

// DefaultInterval is the tick period used when DriverOptions.Interval is
// not set: twenty cycles per second.
const DefaultInterval = 50 * time.Millisecond

// DriverOptions configure a Driver.
//
// All zero values are replaced with sensible defaults in FillDefaults.
type DriverOptions struct {
	// Interval is the period between two cycles.
	Interval time.Duration

	// Backoff bounds the extra delay inserted after a failed cycle.
	Backoff BackoffPolicy

	// PinToCPU locks the driving goroutine to an OS thread bound to CPU.
	// Only effective on Linux.
	PinToCPU bool
	CPU      int
}

func (o *DriverOptions) FillDefaults() {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	o.Backoff.fillDefaults()
	if o.CPU < 0 {
		o.CPU = 0
	}
}

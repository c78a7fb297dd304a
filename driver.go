package workload

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"
	"go.uber.org/multierr"
)

// Driver invokes a set of Runnables once per tick.
//
// Tasks run sequentially on the driver's goroutine in registration
// order. A task that panics is recovered, reported, and does not keep
// the remaining tasks of the cycle from running.
type Driver struct {
	opts DriverOptions

	mu    sync.Mutex
	tasks []Runnable

	cycles   atomic.Uint64
	failures atomic.Uint64
}

func NewDriver(opts DriverOptions, tasks ...Runnable) *Driver {
	opts.FillDefaults()
	d := &Driver{opts: opts}
	for _, t := range tasks {
		d.Register(t)
	}
	return d
}

// Register appends r to the tasks run on every cycle. It is safe to call
// while the driver is running; r joins from the next cycle on.
func (d *Driver) Register(r Runnable) {
	if r == nil {
		return
	}
	d.mu.Lock()
	d.tasks = append(d.tasks, r)
	d.mu.Unlock()
}

// Tick runs one cycle synchronously. The returned error combines every
// task failure of the cycle; use multierr.Errors to split it.
func (d *Driver) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	tasks := slices.Clone(d.tasks)
	d.mu.Unlock()

	var err error
	for i, t := range tasks {
		if e := runRecovered(i, t); e != nil {
			lg.FromContext(ctx).Error("task panicked",
				lg.Int("task", i),
				lg.Any("panic", e.Value),
			)
			err = multierr.Append(err, e)
		}
	}

	d.cycles.Add(1)
	if err != nil {
		d.failures.Add(1)
	}
	return err
}

func runRecovered(i int, r Runnable) (pe *PanicError) {
	defer func() {
		if v := recover(); v != nil {
			pe = &PanicError{Task: i, Value: v, Stack: debug.Stack()}
		}
	}()
	r.Run()
	return nil
}

// Run ticks every Interval until ctx is done, then returns ctx.Err().
//
// After a failed cycle the next tick is delayed by a jittered,
// exponentially growing backoff. A successful cycle resets it.
func (d *Driver) Run(ctx context.Context) error {
	if d.opts.PinToCPU {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if err := PinToCPU(d.opts.CPU); err != nil {
			return fmt.Errorf("workload: pin driver to cpu %d: %w", d.opts.CPU, err)
		}
	}

	logger := lg.FromContext(ctx)
	logger.Info("driver started",
		lg.String("interval", d.opts.Interval.String()),
		lg.Int("tasks", d.Len()),
	)

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	var nextDelay func() time.Duration

	for {
		select {
		case <-ctx.Done():
			logger.Info("driver stopped",
				lg.Any("cycles", d.Cycles()),
				lg.Any("reason", ctx.Err()),
			)
			return ctx.Err()
		case <-ticker.C:
		}

		err := d.Tick(ctx)
		if err == nil {
			nextDelay = nil
			continue
		}
		if ctx.Err() != nil {
			continue
		}

		if nextDelay == nil {
			nextDelay = d.newBackoff()
		}
		delay := nextDelay()
		logger.Warn("cycle failed; backing off",
			lg.Int("errors", len(multierr.Errors(err))),
			lg.String("sleep", delay.String()),
			lg.Any("error", err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
}

func (d *Driver) newBackoff() func() time.Duration {
	bo := boff.New(d.opts.Backoff.Initial, d.opts.Backoff.Max, time.Now().UnixNano())
	return func() time.Duration { return bo.Next() }
}

// Len returns the number of registered tasks.
func (d *Driver) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

// Cycles returns the number of completed cycles.
func (d *Driver) Cycles() uint64 { return d.cycles.Load() }

// Failures returns the number of cycles in which at least one task failed.
func (d *Driver) Failures() uint64 { return d.failures.Load() }

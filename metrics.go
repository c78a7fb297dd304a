package workload

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by tasks to report queueing and
// execution activity.
//
// Hooks are called synchronously from Add and Run, so implementations
// should be lightweight and non-blocking. Implementations shared between
// tasks driven from different goroutines must be safe for concurrent use.
type MetricsPolicy interface {

	// IncExecuted is called once per computed item: every supplier
	// evaluation of a DistributedTask and every Compute of a WorkloadTask.
	IncExecuted()

	// IncQueued is called once per accepted Add or AddWorkload.
	IncQueued()

	// BatchDecQueued decrements the queued counter by n.
	//
	// Tasks call it once per Run with the number of entries removed
	// during that cycle.
	BatchDecQueued(n int64)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
type AtomicMetrics struct {
	// executed is the total number of items computed.
	executed atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// queued is the current number of entries pending.
	queued atomic.Int64
}

// Executed returns the total number of computed items.
func (m *AtomicMetrics) Executed() uint64 {
	return m.executed.Load()
}

// Queued returns the current number of pending entries.
func (m *AtomicMetrics) Queued() int64 {
	return m.queued.Load()
}

func (m *AtomicMetrics) IncExecuted() {
	m.executed.Add(1)
}

func (m *AtomicMetrics) IncQueued() {
	m.queued.Add(1)
}

func (m *AtomicMetrics) BatchDecQueued(n int64) {
	m.queued.Add(-n)
}

//------------- NoopMetrics ----------------------------------

// NoopMetrics discards all metric updates. It is the default policy of
// every task.
type NoopMetrics struct{}

func (m *NoopMetrics) IncExecuted()           {}
func (m *NoopMetrics) IncQueued()             {}
func (m *NoopMetrics) BatchDecQueued(n int64) {}

var noopMetrics MetricsPolicy = &NoopMetrics{}

func metricsOrNoop(m MetricsPolicy) MetricsPolicy {
	if m == nil {
		return noopMetrics
	}
	return m
}

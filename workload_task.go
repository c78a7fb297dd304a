package workload

// WorkloadTask keeps a single FIFO list of workloads and visits all of
// them on every Run. It does no amortization across cycles.
//
// The zero value is ready to use. A WorkloadTask is not safe for
// concurrent use.
type WorkloadTask struct {
	pending fifo[Workload]
	metrics MetricsPolicy
}

// NewWorkloadTask creates a task reporting to m. A nil m disables
// metrics.
func NewWorkloadTask(m MetricsPolicy) *WorkloadTask {
	return &WorkloadTask{metrics: m}
}

// AddWorkload appends w to the pending list. A nil w is ignored.
func (t *WorkloadTask) AddWorkload(w Workload) {
	if w == nil {
		return
	}
	t.pending.push(w)
	metricsOrNoop(t.metrics).IncQueued()
}

// Run gives every pending workload one cycle and removes those that are
// done. See ComputeThenCheckForScheduling.
//
// A panicking workload aborts the cycle; it and every workload not yet
// visited stay pending.
func (t *WorkloadTask) Run() {
	m := metricsOrNoop(t.metrics)
	t.pending.removeIf(func(w Workload) bool {
		if !w.ShouldExecute() {
			return false
		}
		w.Compute()
		m.IncExecuted()
		return !w.Reschedule()
	}, func(removed int) {
		if removed > 0 {
			m.BatchDecQueued(int64(removed))
		}
	})
}

// Len returns the number of pending workloads.
func (t *WorkloadTask) Len() int { return t.pending.len() }

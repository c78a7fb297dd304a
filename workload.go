package workload

// Workload is a unit of work scheduled by a WorkloadTask.
type Workload interface {
	// ShouldExecute reports whether the workload is eligible to compute
	// on the current cycle.
	ShouldExecute() bool

	// Compute performs the work.
	Compute()

	// Reschedule is consulted after Compute. Returning true keeps the
	// workload queued for the next cycle.
	Reschedule() bool
}

// ComputeThenCheckForScheduling runs one cycle of w.
//
// An ineligible workload is left untouched and false is returned. An
// eligible one computes, and the result is true when it no longer wants
// to be scheduled.
func ComputeThenCheckForScheduling(w Workload) bool {
	if !w.ShouldExecute() {
		return false
	}
	w.Compute()
	return !w.Reschedule()
}

// WorkloadFunc builds a Workload from closures.
//
// A nil Eligible means always eligible. A nil Again means the workload
// is done after its first computation.
type WorkloadFunc struct {
	Eligible func() bool
	Fn       func()
	Again    func() bool
}

func (w WorkloadFunc) ShouldExecute() bool {
	if w.Eligible == nil {
		return true
	}
	return w.Eligible()
}

func (w WorkloadFunc) Compute() {
	if w.Fn != nil {
		w.Fn()
	}
}

func (w WorkloadFunc) Reschedule() bool {
	if w.Again == nil {
		return false
	}
	return w.Again()
}

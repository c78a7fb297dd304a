package workload_test

import (
	"testing"

	wl "github.com/azargarov/workload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAtomicMetrics_DistributedTask(t *testing.T) {
	m := &wl.AtomicMetrics{}
	task := newTestTask(t, wl.Config[int]{
		EscapeCondition:  func(v int) bool { return v%2 == 0 },
		DistributionSize: 3,
		Metrics:          m,
	})
	for i := range 6 {
		task.Add(constSupplier(i))
	}
	if m.Queued() != 6 {
		t.Fatalf("queued = %d; want 6", m.Queued())
	}

	for range 3 {
		task.Run()
	}

	if m.Executed() != 6 {
		t.Fatalf("executed = %d; want 6", m.Executed())
	}
	// odd values stay queued
	if m.Queued() != 3 || int64(task.Len()) != m.Queued() {
		t.Fatalf("queued = %d len = %d; want 3", m.Queued(), task.Len())
	}
}

func TestAtomicMetrics_WorkloadTask(t *testing.T) {
	m := &wl.AtomicMetrics{}
	task := wl.NewWorkloadTask(m)
	task.AddWorkload(wl.WorkloadFunc{})
	task.AddWorkload(wl.WorkloadFunc{Eligible: func() bool { return false }})

	task.Run()

	if m.Executed() != 1 || m.Queued() != 1 {
		t.Fatalf("executed = %d queued = %d; want 1 and 1", m.Executed(), m.Queued())
	}
}

func TestPromMetrics(t *testing.T) {
	m := wl.NewPromMetrics("test")
	reg := prometheus.NewRegistry()
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	task := newTestTask(t, wl.Config[string]{DistributionSize: 2, Metrics: m})
	task.Add(constSupplier("a"))
	task.Add(constSupplier("b"))
	tk := task.AddCancelable(constSupplier("c"))
	tk.Cancel()

	task.Run()
	task.Run()

	n, err := testutil.GatherAndCount(reg)
	if err != nil || n != 3 {
		t.Fatalf("gathered %d metrics (err %v); want 3", n, err)
	}
	// slot 0 holds a and c, slot 1 holds b; c is dropped without running
	if got := testutil.ToFloat64(m.Collectors()[0]); got != 2 {
		t.Fatalf("executed = %v; want 2", got)
	}
	if got := testutil.ToFloat64(m.Collectors()[1]); got != 0 {
		t.Fatalf("queued = %v; want 0", got)
	}
	if got := testutil.ToFloat64(m.Collectors()[2]); got != 3 {
		t.Fatalf("removed = %v; want 3", got)
	}
}

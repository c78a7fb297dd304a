package workload_test

import (
	"slices"
	"testing"

	wl "github.com/azargarov/workload"
)

// countdown computes until its budget is spent.
type countdown struct {
	wl.ConditionalWorkload[*int]
	name string
	log  *[]string
}

func newCountdown(name string, budget int, log *[]string) *countdown {
	b := budget
	return &countdown{
		ConditionalWorkload: wl.NewConditionalWorkload(&b, func(v *int) bool { return *v > 0 }),
		name:                name,
		log:                 log,
	}
}

func (c *countdown) Compute() {
	*c.Element()--
	*c.log = append(*c.log, c.name)
}

func (c *countdown) Reschedule() bool { return *c.Element() > 0 }

// -----------------------------------------------------------------------------
// ConditionalWorkload
// -----------------------------------------------------------------------------

func TestConditionalWorkload_ShouldExecute(t *testing.T) {
	tests := []struct {
		name  string
		value int
		test  wl.Predicate[int]
		want  bool
	}{
		{"true", 4, func(v int) bool { return v%2 == 0 }, true},
		{"false", 3, func(v int) bool { return v%2 == 0 }, false},
		{"constant", 0, func(int) bool { return true }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cw := wl.NewConditionalWorkload(tc.value, tc.test)
			if got := cw.ShouldExecute(); got != tc.want {
				t.Fatalf("ShouldExecute() = %v; want %v", got, tc.want)
			}
			if got := cw.Element(); got != tc.value {
				t.Fatalf("Element() = %v; want %v", got, tc.value)
			}
		})
	}
}

func TestConditionalWorkload_DoesNotMutate(t *testing.T) {
	v := []int{1, 2, 3}
	cw := wl.NewConditionalWorkload(v, func(s []int) bool { return len(s) == 3 })

	for range 3 {
		if !cw.ShouldExecute() {
			t.Fatal("expected predicate to hold")
		}
	}
	if !slices.Equal(cw.Element(), []int{1, 2, 3}) {
		t.Fatalf("element mutated: %v", cw.Element())
	}
}

func TestConditionalWorkload_PredicatePanicPropagates(t *testing.T) {
	cw := wl.NewConditionalWorkload(1, func(int) bool { panic("bad predicate") })

	if v := mustPanic(t, func() { cw.ShouldExecute() }); v != "bad predicate" {
		t.Fatalf("panic value = %v", v)
	}
}

// -----------------------------------------------------------------------------
// ComputeThenCheckForScheduling
// -----------------------------------------------------------------------------

func TestComputeThenCheckForScheduling(t *testing.T) {
	tests := []struct {
		name     string
		eligible bool
		again    bool
		computed bool
		done     bool
	}{
		{"ineligible", false, false, false, false},
		{"eligible one-shot", true, false, true, true},
		{"eligible rescheduled", true, true, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			computed := false
			w := wl.WorkloadFunc{
				Eligible: func() bool { return tc.eligible },
				Fn:       func() { computed = true },
				Again:    func() bool { return tc.again },
			}
			if got := wl.ComputeThenCheckForScheduling(w); got != tc.done {
				t.Fatalf("done = %v; want %v", got, tc.done)
			}
			if computed != tc.computed {
				t.Fatalf("computed = %v; want %v", computed, tc.computed)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// WorkloadTask
// -----------------------------------------------------------------------------

func TestWorkloadTask_DoneRemovedAfterOneRun(t *testing.T) {
	var task wl.WorkloadTask
	runs := 0
	task.AddWorkload(wl.WorkloadFunc{Fn: func() { runs++ }})

	task.Run()

	if task.Len() != 0 || runs != 1 {
		t.Fatalf("len = %d runs = %d; want 0 and 1", task.Len(), runs)
	}
}

func TestWorkloadTask_RescheduledStays(t *testing.T) {
	var task wl.WorkloadTask
	runs := 0
	task.AddWorkload(wl.WorkloadFunc{
		Fn:    func() { runs++ },
		Again: func() bool { return true },
	})

	for range 5 {
		task.Run()
	}

	if task.Len() != 1 || runs != 5 {
		t.Fatalf("len = %d runs = %d; want 1 and 5", task.Len(), runs)
	}
}

func TestWorkloadTask_IneligibleNotComputed(t *testing.T) {
	var task wl.WorkloadTask
	ready := false
	runs := 0
	task.AddWorkload(wl.WorkloadFunc{
		Eligible: func() bool { return ready },
		Fn:       func() { runs++ },
	})

	task.Run()
	if task.Len() != 1 || runs != 0 {
		t.Fatalf("len = %d runs = %d; want 1 and 0", task.Len(), runs)
	}

	ready = true
	task.Run()
	if task.Len() != 0 || runs != 1 {
		t.Fatalf("len = %d runs = %d; want 0 and 1", task.Len(), runs)
	}
}

func TestWorkloadTask_DrainsWholeListInOrder(t *testing.T) {
	var log []string
	task := wl.NewWorkloadTask(nil)
	task.AddWorkload(newCountdown("a", 1, &log))
	task.AddWorkload(newCountdown("b", 2, &log))
	task.AddWorkload(newCountdown("c", 3, &log))
	task.AddWorkload(nil)

	task.Run()
	if want := []string{"a", "b", "c"}; !slices.Equal(log, want) {
		t.Fatalf("run 1 order = %v; want %v", log, want)
	}
	if task.Len() != 2 {
		t.Fatalf("len = %d; want 2", task.Len())
	}

	task.Run()
	task.Run()
	if want := []string{"a", "b", "c", "b", "c", "c"}; !slices.Equal(log, want) {
		t.Fatalf("order = %v; want %v", log, want)
	}
	if task.Len() != 0 {
		t.Fatalf("len = %d; want 0", task.Len())
	}
}

func TestWorkloadTask_PanicKeepsRemaining(t *testing.T) {
	var task wl.WorkloadTask
	fail := true
	var log []string

	task.AddWorkload(wl.WorkloadFunc{Fn: func() { log = append(log, "first") }})
	task.AddWorkload(wl.WorkloadFunc{Fn: func() {
		if fail {
			panic("compute failed")
		}
		log = append(log, "second")
	}})
	task.AddWorkload(wl.WorkloadFunc{Fn: func() { log = append(log, "third") }})

	if v := mustPanic(t, task.Run); v != "compute failed" {
		t.Fatalf("panic value = %v", v)
	}
	if task.Len() != 2 {
		t.Fatalf("len = %d; want 2", task.Len())
	}

	fail = false
	task.Run()
	if want := []string{"first", "second", "third"}; !slices.Equal(log, want) {
		t.Fatalf("log = %v; want %v", log, want)
	}
	if task.Len() != 0 {
		t.Fatalf("len = %d; want 0", task.Len())
	}
}

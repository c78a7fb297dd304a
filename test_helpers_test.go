package workload_test

import (
	"testing"

	wl "github.com/azargarov/workload"
)

// recorder collects produced values in execution order.
type recorder[T any] struct {
	seen []T
}

func (r *recorder[T]) action(v T) { r.seen = append(r.seen, v) }

func always[T any](T) bool { return true }
func never[T any](T) bool  { return false }

func constSupplier[T any](v T) wl.Supplier[T] {
	return func() T { return v }
}

func newTestTask[T any](t testing.TB, cfg wl.Config[T]) *wl.DistributedTask[T] {
	t.Helper()

	task, err := wl.New(cfg)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return task
}

func spread(sizes []int) int {
	lo, hi := sizes[0], sizes[0]
	for _, s := range sizes[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return hi - lo
}

// mustPanic runs fn and returns the recovered value, failing the test if
// fn returns normally.
func mustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()

	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}

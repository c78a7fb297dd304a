package workload

// Predicate reports whether v satisfies a condition.
type Predicate[T any] func(v T) bool

// ConditionalWorkload standardizes eligibility for workloads whose
// readiness depends on a bound value.
//
// It is meant to be embedded: the embedding type supplies Compute and
// Reschedule, and inherits ShouldExecute.
//
//	type regenChunk struct {
//		workload.ConditionalWorkload[*Chunk]
//	}
//
//	func (r *regenChunk) Compute()         { r.Element().Regenerate() }
//	func (r *regenChunk) Reschedule() bool { return false }
type ConditionalWorkload[T any] struct {
	element T
	test    Predicate[T]
}

// NewConditionalWorkload binds element to test.
func NewConditionalWorkload[T any](element T, test Predicate[T]) ConditionalWorkload[T] {
	return ConditionalWorkload[T]{element: element, test: test}
}

// ShouldExecute returns test(element). A panic raised by the predicate
// reaches the caller.
func (c ConditionalWorkload[T]) ShouldExecute() bool {
	return c.test(c.element)
}

// Element returns the bound value.
func (c ConditionalWorkload[T]) Element() T {
	return c.element
}

// Package workload provides primitives for amortizing a large, growing
// backlog of deferred work across repeated invocations of a driver such
// as a periodic tick.
//
// Design goals
//
// The package is designed around the following principles:
//
//   - Bound the amount of work done by a single invocation
//   - Keep load spread evenly without rebalancing after placement
//   - Run synchronously in the caller's goroutine, with no locking
//
// Rather than executing work as fast as possible, workload optimizes for
// predictable per-tick cost when a host loop (a game tick, a scheduler
// callback, a timer) must never stall on a backlog.
//
// Architecture overview
//
// The package is composed of three loosely coupled layers:
//
//   1. Units of work (Workload, ConditionalWorkload)
//      A Workload decides whether it should run now, computes, and reports
//      whether it wants to be scheduled again. ConditionalWorkload binds a
//      value to a predicate and standardizes the eligibility check.
//
//   2. Tasks (DistributedTask, WorkloadTask)
//      Tasks own pending work and expose a single Run entry point.
//      DistributedTask spreads deferred value suppliers over N slots and
//      drains exactly one slot per Run. WorkloadTask keeps a single list
//      and visits all of it on every Run.
//
//   3. Driving (Driver)
//      The Driver invokes registered Runnables once per tick. It is an
//      optional convenience; any loop that calls Run works.
//
// Distribution model
//
// New suppliers always go to the currently least-loaded slot, ties broken
// by the lowest slot index. Each Run drains the slot at the cursor and then
// advances the cursor modulo N, so over N consecutive runs every slot is
// drained exactly once.
//
// Important: distribution amortizes the backlog, not the individual item.
//
// Items within a slot are processed sequentially in insertion order. An
// item stays queued until its escape condition reports true, or until it
// is canceled through a Ticket.
//
// Error handling
//
// Callbacks signal faults by panicking. Tasks never recover: a panic
// propagates out of Run, the current cycle is abandoned, and unvisited
// items stay queued for the next visit of the same slot. The Driver
// recovers panics into *PanicError values so one failing task does not
// stop the others.
//
// Concurrency
//
// Tasks are not safe for concurrent use. Callers that Add from other
// goroutines must synchronize externally.
package workload

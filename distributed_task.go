package workload

import (
	"fmt"
	"sync/atomic"
)

// Supplier produces a value when a slot is drained. It defers the
// creation of the work until the cycle that processes it.
type Supplier[T any] func() T

// Config configures a DistributedTask.
type Config[T any] struct {
	// Action is applied to every produced value. Optional: when nil the
	// value is produced and discarded.
	Action func(T)

	// EscapeCondition decides whether a supplier leaves its slot after
	// producing v. Optional: when nil every supplier is removed after
	// its first execution.
	EscapeCondition func(v T) bool

	// DistributionSize is the number of slots. Must be at least 1.
	DistributionSize int

	// Metrics receives activity hooks. Defaults to NoopMetrics.
	Metrics MetricsPolicy
}

// Ticket cancels a single entry added with AddCancelable.
type Ticket struct {
	canceled atomic.Bool
}

// Cancel marks the entry. The next drain of its slot removes it without
// invoking the supplier or any callback.
func (t *Ticket) Cancel() { t.canceled.Store(true) }

// Canceled reports whether Cancel has been called.
func (t *Ticket) Canceled() bool { return t.canceled.Load() }

type entry[T any] struct {
	supply Supplier[T]
	ticket *Ticket
}

// DistributedTask spreads deferred suppliers over a fixed number of FIFO
// slots and drains exactly one slot per Run, round-robin.
//
// A DistributedTask is not safe for concurrent use.
type DistributedTask[T any] struct {
	action  func(T)
	escape  func(T) bool
	metrics MetricsPolicy

	slots  []fifo[entry[T]]
	cursor int
}

// New creates a DistributedTask. It fails with ErrInvalidDistributionSize
// when cfg.DistributionSize is not positive.
func New[T any](cfg Config[T]) (*DistributedTask[T], error) {
	if cfg.DistributionSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDistributionSize, cfg.DistributionSize)
	}
	return &DistributedTask[T]{
		action:  cfg.Action,
		escape:  cfg.EscapeCondition,
		metrics: metricsOrNoop(cfg.Metrics),
		slots:   make([]fifo[entry[T]], cfg.DistributionSize),
	}, nil
}

// Add queues supplier in the least-loaded slot. Ties go to the lowest
// slot index. A nil supplier is ignored.
func (t *DistributedTask[T]) Add(supplier Supplier[T]) {
	if supplier == nil {
		return
	}
	t.add(entry[T]{supply: supplier})
}

// AddCancelable queues supplier like Add and returns a Ticket that can
// remove it before its escape condition is met. It returns nil for a
// nil supplier.
func (t *DistributedTask[T]) AddCancelable(supplier Supplier[T]) *Ticket {
	if supplier == nil {
		return nil
	}
	tk := &Ticket{}
	t.add(entry[T]{supply: supplier, ticket: tk})
	return tk
}

func (t *DistributedTask[T]) add(e entry[T]) {
	t.slots[t.smallestSlot()].push(e)
	t.metrics.IncQueued()
}

// smallestSlot returns the first slot, in index order, holding the
// fewest entries.
func (t *DistributedTask[T]) smallestSlot() int {
	idx := 0
	for i := 1; i < len(t.slots); i++ {
		if t.slots[idx].len() == 0 {
			break
		}
		if t.slots[i].len() < t.slots[idx].len() {
			idx = i
		}
	}
	return idx
}

// Run drains the slot at the cursor and advances the cursor.
//
// Every supplier in the slot is evaluated, the action is applied to the
// value, and the supplier is removed when the escape condition holds.
// A panic from a supplier or callback propagates; the cursor still
// advances and the unvisited suppliers wait for the next visit of the
// slot.
func (t *DistributedTask[T]) Run() {
	defer t.proceedCursor()
	t.slots[t.cursor].removeIf(t.executeThenCheck, t.reportRemoved)
}

func (t *DistributedTask[T]) executeThenCheck(e entry[T]) bool {
	if e.ticket != nil && e.ticket.Canceled() {
		return true
	}
	v := e.supply()
	t.metrics.IncExecuted()
	if t.action != nil {
		t.action(v)
	}
	return t.escape == nil || t.escape(v)
}

func (t *DistributedTask[T]) reportRemoved(n int) {
	if n > 0 {
		t.metrics.BatchDecQueued(int64(n))
	}
}

func (t *DistributedTask[T]) proceedCursor() {
	t.cursor++
	if t.cursor == len(t.slots) {
		t.cursor = 0
	}
}

// Cursor returns the index of the slot the next Run drains.
func (t *DistributedTask[T]) Cursor() int { return t.cursor }

// DistributionSize returns the number of slots.
func (t *DistributedTask[T]) DistributionSize() int { return len(t.slots) }

// SlotSizes returns the number of entries queued in each slot, canceled
// but not yet drained entries included.
func (t *DistributedTask[T]) SlotSizes() []int {
	sizes := make([]int, len(t.slots))
	for i := range t.slots {
		sizes[i] = t.slots[i].len()
	}
	return sizes
}

// Len returns the total number of queued entries.
func (t *DistributedTask[T]) Len() int {
	total := 0
	for i := range t.slots {
		total += t.slots[i].len()
	}
	return total
}

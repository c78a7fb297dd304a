package workload

// fifo is an ordered, growable list of pending entries.
//
// It backs both the slots of a DistributedTask and the pending list of a
// WorkloadTask. Entries are visited strictly in insertion order.
type fifo[E any] struct {
	items []E
}

func (q *fifo[E]) push(e E) {
	q.items = append(q.items, e)
}

func (q *fifo[E]) len() int { return len(q.items) }

// removeIf visits the entries present when the call starts and removes
// those for which remove returns true. Survivors keep their relative
// order.
//
// Entries pushed by remove itself are not visited during this call. If
// remove panics, the faulting entry and everything after it stay queued
// and the panic continues to the caller. done, when non-nil, receives
// the number of removed entries in both cases.
func (q *fifo[E]) removeIf(remove func(E) bool, done func(removed int)) {
	n := len(q.items)
	w, i := 0, 0

	defer func() {
		m := copy(q.items[w:], q.items[i:])
		clear(q.items[w+m:])
		q.items = q.items[:w+m]
		if done != nil {
			done(i - w)
		}
	}()

	for i < n {
		e := q.items[i]
		if !remove(e) {
			q.items[w] = e
			w++
		}
		i++
	}
}

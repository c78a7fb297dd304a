package workload

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDistributionSize is returned when a DistributedTask is
	// configured with fewer than one slot.
	ErrInvalidDistributionSize = errors.New("workload: distribution size must be at least 1")
)

// PanicError carries a panic recovered by the Driver while running a task.
type PanicError struct {
	// Task is the registration index of the task that panicked.
	Task  int
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workload: task %d panicked: %v", e.Task, e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

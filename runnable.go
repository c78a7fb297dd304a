package workload

// Runnable is the capability shared by every task in this package: a
// single entry point invoked once per driver cycle.
//
// Run must complete all of its work before returning.
type Runnable interface {
	Run()
}

// RunnableFunc adapts an ordinary function to the Runnable interface.
type RunnableFunc func()

// Run calls f.
func (f RunnableFunc) Run() { f() }

var (
	_ Runnable = (*DistributedTask[int])(nil)
	_ Runnable = (*WorkloadTask)(nil)
	_ Runnable = RunnableFunc(nil)
)

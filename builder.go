package workload

// Builder assembles a DistributedTask step by step. Validation happens
// in Build.
type Builder[T any] struct {
	cfg Config[T]
}

func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

func (b *Builder[T]) Action(action func(T)) *Builder[T] {
	b.cfg.Action = action
	return b
}

func (b *Builder[T]) EscapeCondition(escape func(T) bool) *Builder[T] {
	b.cfg.EscapeCondition = escape
	return b
}

func (b *Builder[T]) DistributionSize(n int) *Builder[T] {
	b.cfg.DistributionSize = n
	return b
}

func (b *Builder[T]) Metrics(m MetricsPolicy) *Builder[T] {
	b.cfg.Metrics = m
	return b
}

// Build creates the task from the accumulated configuration.
func (b *Builder[T]) Build() (*DistributedTask[T], error) {
	return New(b.cfg)
}

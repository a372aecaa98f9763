// Package sig is the typed facade over the reactive runtime: signals, effects,
// owners and batching.
package sig

import "github.com/AnatoleLucet/sigstyle/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates your tipical read/write signal.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		internal.GetRuntime().NewSignal(initial),
	}
}

// Read the current value of the signal, tracking the dependency if within a reactive context.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Get reads the value and subscribes the given effect. A nil effect doesn't subscribe.
func (s *Signal[T]) Get(e *Effect) T {
	if e == nil {
		return as[T](s.signal.Snapshot())
	}

	return as[T](s.signal.Get(e.effect))
}

// Snapshot reads the value without tracking, even inside an effect.
func (s *Signal[T]) Snapshot() T {
	return as[T](s.signal.Snapshot())
}

// Write a new value to the signal, triggering updates to any dependents.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// Stale marks (change > 0) or releases (change < 0) the signal as being in flux.
// Dependents wait for the last release and only rerun if a release was fresh.
func (s *Signal[T]) Stale(change int, fresh bool) {
	s.signal.Stale(change, fresh)
}

// Version is bumped on every change of the value.
func (s *Signal[T]) Version() uint64 {
	return s.signal.Version()
}

// Subscribe calls fn after each change until the returned function is called.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.signal.Subscribe(fn)
}

// Subscribers returns the number of effects depending on the signal.
func (s *Signal[T]) Subscribers() int {
	return s.signal.Subscribers()
}

type Effect struct {
	effect *internal.Effect
}

// NewEffect creates a reactive effect that runs the given function
// whenever its dependencies change.
func NewEffect(fn func()) *Effect {
	return &Effect{
		internal.GetRuntime().NewEffect(fn),
	}
}

// NewLazyEffect creates an effect that only runs once Run is called.
func NewLazyEffect(fn func()) *Effect {
	return &Effect{
		internal.GetRuntime().NewLazyEffect(fn),
	}
}

// Run executes the effect now, rebuilding its dependencies.
func (e *Effect) Run() { e.effect.Run() }

// Dispose stops the effect and unsubscribes it from every signal.
func (e *Effect) Dispose() { e.effect.Dispose() }

func (e *Effect) Disposed() bool { return e.effect.Disposed() }

// Runs returns how many times the effect executed.
func (e *Effect) Runs() int { return e.effect.Runs() }

// Deps returns how many signals the last run subscribed to.
func (e *Effect) Deps() int { return e.effect.DepCount() }

// NewBatch batches multiple signal writes into a single update cycle,
// instead of triggering updates after each write.
func NewBatch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// Batching reports whether writes are currently deferred until a batch or flush ends.
func Batching() bool {
	return internal.GetRuntime().Batching()
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// Release drops the reactive runtime of the calling goroutine once it is done
// with its signals, e.g. at the end of a one-shot resolution.
func Release() {
	internal.ReleaseRuntime()
}

// OnCleanup registers a function to be called when the current owner is disposed.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a new reactive owner, child of the current one.
// An owner manages the lifecycle of reactive nodes created within its context.
func NewOwner() *Owner {
	rt := internal.GetRuntime()

	o := rt.NewOwner()
	if parent := rt.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return &Owner{o}
}

// Run a function within the context of this owner.
// Each reactive node created within the function will be a child of this owner,
// and will be disposed when owner.Dispose() is called on this owner.
func (o *Owner) Run(fn func() error) error {
	var err error
	o.owner.Run(func() { err = fn() })
	return err
}

// Dispose this owner and all its children.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Add a cleanup function to be called when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when a panic occurs within this owner.
// If no error listener is registered, the panic will propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }

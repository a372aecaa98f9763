package internal

import (
	"sync"
)

type Runtime struct {
	mu sync.Mutex

	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler
	queue     *EffectQueue
}

func NewRuntime() *Runtime {
	return &Runtime{
		tracker:   NewTracker(),
		batcher:   NewBatcher(),
		scheduler: NewScheduler(),
		queue:     NewEffectQueue(),
	}
}

func (r *Runtime) enqueue(e *Effect) {
	r.mu.Lock()
	r.queue.Enqueue(e)
	r.scheduler.Schedule()
	r.mu.Unlock()
}

func (r *Runtime) Schedule() {
	r.mu.Lock()
	shouldFlush := r.queue.Len() > 0 && !r.batcher.IsBatching() && !r.scheduler.Running()
	r.mu.Unlock()

	if shouldFlush {
		r.Flush()
	}
}

// Flush reruns queued effects until the queue is empty. Effects queued by the
// reruns themselves are drained by the same loop.
func (r *Runtime) Flush() {
	r.scheduler.Run(func() {
		for {
			r.mu.Lock()
			e := r.queue.Dequeue()
			r.mu.Unlock()

			if e == nil {
				return
			}

			if e.dirty && e.staleDeps == 0 {
				e.Run()
			}
		}
	})
}

// Batching reports whether writes are currently deferred by a batch, a
// running computation or a flush.
func (r *Runtime) Batching() bool {
	return r.batcher.IsBatching() || r.scheduler.Running()
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.currentOwner
}

func (r *Runtime) CurrentEffect() *Effect {
	return r.tracker.currentEffect
}

func (r *Runtime) OnCleanup(fn func()) {
	owner := r.CurrentOwner()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

func (r *Runtime) Time() int {
	return r.scheduler.Time()
}

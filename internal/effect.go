package internal

// Effect is a tracked computation. It remembers the signals read during its most
// recent run and is rerun once any of them changes.
type Effect struct {
	*Owner

	rt *Runtime
	fn func()

	depsHead *DependencyLink

	// number of dependencies currently marked stale
	staleDeps int
	// a released dependency reported a fresh value
	dirty bool

	running  bool
	disposed bool

	runs int
}

// NewEffect creates an effect owned by the current owner and runs it once.
func (r *Runtime) NewEffect(fn func()) *Effect {
	e := r.newEffect(fn)

	if owner := r.CurrentOwner(); owner != nil {
		e.Owner.parent = owner
		owner.OnCleanup(e.Dispose)
	}

	e.Run()

	return e
}

// NewLazyEffect creates an effect owned by the current owner without running it.
func (r *Runtime) NewLazyEffect(fn func()) *Effect {
	e := r.newEffect(fn)

	if owner := r.CurrentOwner(); owner != nil {
		e.Owner.parent = owner
		owner.OnCleanup(e.Dispose)
	}

	return e
}

func (r *Runtime) newEffect(fn func()) *Effect {
	return &Effect{
		Owner: r.NewOwner(),
		rt:    r,
		fn:    fn,
	}
}

// Run disposes the previous run's children and cleanups, drops every dependency
// and executes the computation again, collecting a fresh dependency list.
func (e *Effect) Run() {
	if e.disposed {
		return
	}
	Assert(!e.running, "effect re-entered while running")

	e.Owner.Dispose()
	e.ClearDeps()
	Assert(e.depsHead == nil, "effect rerun without clearing its dependencies")

	e.dirty = false
	e.staleDeps = 0
	e.runs++

	e.running = true
	e.rt.batcher.Compute(func() {
		defer func() { e.running = false }()
		e.rt.tracker.RunWithEffect(e, e.fn)
	}, e.rt.Flush)
}

func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	e.Owner.Dispose()
	e.ClearDeps()
	e.rt.queue.Remove(e)
}

func (e *Effect) Disposed() bool {
	return e.disposed
}

// Runs returns how many times the computation executed.
func (e *Effect) Runs() int {
	return e.runs
}

// ClearDeps removes all dependencies
func (e *Effect) ClearDeps() {
	for link := e.depsHead; link != nil; {
		next := link.nextDep
		link.dep.removeSubLink(link)
		link = next
	}

	e.depsHead = nil
}

// DepCount returns the number of signals the last run subscribed to.
func (e *Effect) DepCount() int {
	n := 0
	for link := e.depsHead; link != nil; link = link.nextDep {
		n++
	}

	return n
}

func (e *Effect) link(dep *Signal) {
	if e.disposed {
		return
	}

	for link := e.depsHead; link != nil; link = link.nextDep {
		if link.dep == dep {
			return
		}
	}

	link := &DependencyLink{dep: dep, sub: e}

	e.addDepLink(link)
	dep.addSubLink(link)
}

func (e *Effect) stale(change int, fresh bool) {
	if e.disposed {
		return
	}

	if change > 0 {
		e.staleDeps++
		return
	}

	// a dependency linked while already stale never sent its +1
	if e.staleDeps > 0 {
		e.staleDeps--
	}
	e.dirty = e.dirty || fresh

	if e.staleDeps == 0 && e.dirty {
		e.rt.enqueue(e)
	}
}

package internal

import "reflect"

type Signal struct {
	rt *Runtime

	value any

	// bumped each time the value changes (or a stale mark is released as fresh)
	version uint64

	subsHead *DependencyLink

	// number of outstanding Stale(+1) marks
	staleCount int
	// whether any released mark reported a change
	fresh bool
}

func (r *Runtime) NewSignal(initial any) *Signal {
	return &Signal{
		rt:    r,
		value: initial,
	}
}

// Read returns the current value, tracking the dependency if called from a running effect.
func (s *Signal) Read() any {
	if s.rt.tracker.ShouldTrack() {
		s.rt.tracker.currentEffect.link(s)
	}

	return s.value
}

// Get returns the current value and subscribes e to the signal.
// A nil effect reads without subscribing.
func (s *Signal) Get(e *Effect) any {
	if e != nil {
		e.link(s)
	}

	return s.value
}

// Snapshot returns the current value without ever subscribing.
func (s *Signal) Snapshot() any {
	return s.value
}

func (s *Signal) Version() uint64 {
	return s.version
}

func (s *Signal) Write(v any) {
	if isEqual(s.value, v) {
		return
	}

	s.value = v
	s.Stale(1, false)
	s.Stale(-1, true)
}

// Stale marks the signal as in flux (change > 0) or releases a previous mark (change < 0).
// Subscribers are told to wait on the first mark and are only rerun once the last
// mark is released and at least one release reported a fresh value.
func (s *Signal) Stale(change int, fresh bool) {
	switch {
	case change > 0:
		s.staleCount++
		if s.staleCount == 1 {
			for _, sub := range s.subs() {
				sub.stale(1, false)
			}
		}

	case change < 0:
		Assert(s.staleCount > 0, "signal released more stale marks than it received")

		s.staleCount--
		s.fresh = s.fresh || fresh
		if s.staleCount > 0 {
			return
		}

		fresh := s.fresh
		s.fresh = false
		if fresh {
			s.version++
		}

		for _, sub := range s.subs() {
			sub.stale(-1, fresh)
		}

		s.rt.Schedule()
	}
}

// Subscribe calls fn after every version change of the signal until the returned
// function is called.
func (s *Signal) Subscribe(fn func()) func() {
	first := true

	e := s.rt.newEffect(func() {
		s.Read()

		if first {
			first = false
			return
		}

		s.rt.tracker.RunUntracked(fn)
	})
	e.Run()

	return e.Dispose
}

// Subscribers returns the number of effects currently depending on the signal.
func (s *Signal) Subscribers() int {
	return len(s.subs())
}

// subs snapshots the subscriber list so notifications can't be disturbed by relinking.
func (s *Signal) subs() []*Effect {
	var subs []*Effect
	for link := s.subsHead; link != nil; link = link.nextSub {
		subs = append(subs, link.sub)
	}

	return subs
}

func isEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}

	return a == b
}

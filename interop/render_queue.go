package interop

import (
	"slices"
	"sync"
)

// RenderQueue collects components whose style changed outside of a render.
// Flushing rerenders them parents first, each at most once per round.
type RenderQueue struct {
	dirty    []*ComponentState
	dirtySet map[*ComponentState]bool
	flushing bool
	mu       sync.Mutex

	// OnNeedsFrame is called when a component is queued on an idle queue,
	// so the host can schedule a pass.
	OnNeedsFrame func()
}

func NewRenderQueue() *RenderQueue {
	return &RenderQueue{}
}

// Schedule marks c for rerender. Scheduling a queued component is a no-op.
func (q *RenderQueue) Schedule(c *ComponentState) {
	first, added := func() (bool, bool) {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.dirtySet[c] {
			return false, false
		}
		if q.dirtySet == nil {
			q.dirtySet = make(map[*ComponentState]bool)
		}
		q.dirtySet[c] = true
		q.dirty = append(q.dirty, c)
		return len(q.dirty) == 1 && !q.flushing, true
	}()

	if added && first && q.OnNeedsFrame != nil {
		q.OnNeedsFrame()
	}
}

// Pending returns the number of queued components.
func (q *RenderQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.dirty)
}

// Flush calls render for every queued component in depth order. Components
// queued by render are drained by the same call, and a Flush from inside
// render returns immediately.
func (q *RenderQueue) Flush(render func(*ComponentState)) {
	q.mu.Lock()
	if q.flushing {
		q.mu.Unlock()
		return
	}
	q.flushing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.flushing = false
		q.mu.Unlock()
	}()

	for {
		q.mu.Lock()
		if len(q.dirty) == 0 {
			q.mu.Unlock()
			return
		}

		slices.SortStableFunc(q.dirty, func(a, b *ComponentState) int {
			return a.Depth() - b.Depth()
		})

		dirty := q.dirty
		q.dirty = nil
		clear(q.dirtySet)
		q.mu.Unlock()

		for _, c := range dirty {
			if c.Unmounted() {
				continue
			}
			render(c)
		}
	}
}

// Clear drops every queued component.
func (q *RenderQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dirty = nil
	clear(q.dirtySet)
}

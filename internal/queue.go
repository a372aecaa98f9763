package internal

// EffectQueue holds effects waiting to rerun. An effect is queued at most once
// until it is dequeued, so a burst of writes reruns it a single time.
type EffectQueue struct {
	effects []*Effect
	queued  map[*Effect]bool
}

func NewEffectQueue() *EffectQueue {
	return &EffectQueue{
		effects: make([]*Effect, 0),
		queued:  make(map[*Effect]bool),
	}
}

func (q *EffectQueue) Enqueue(e *Effect) bool {
	if q.queued[e] {
		return false
	}

	q.queued[e] = true
	q.effects = append(q.effects, e)
	return true
}

// Dequeue pops the oldest queued effect, nil when empty.
func (q *EffectQueue) Dequeue() *Effect {
	for len(q.effects) > 0 {
		e := q.effects[0]
		q.effects = q.effects[1:]

		if q.queued[e] {
			delete(q.queued, e)
			return e
		}
	}

	return nil
}

func (q *EffectQueue) Remove(e *Effect) {
	delete(q.queued, e)
}

func (q *EffectQueue) Len() int {
	return len(q.queued)
}

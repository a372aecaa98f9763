package internal

// Batcher defers flushing while writes are grouped. Two things group writes:
// explicit batches, and computations that are still running. A write made by
// a running effect must not rerun that effect from inside itself, so its
// dependents wait until the outermost computation returns.
type Batcher struct {
	batches   int
	computing int
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	return b.batches > 0 || b.computing > 0
}

// Batch runs fn and calls flush once nothing groups writes anymore.
func (b *Batcher) Batch(fn, flush func()) {
	b.batches++
	defer b.release(&b.batches, flush)

	fn()
}

// Compute runs a computation, flushing what it wrote once it returns unless
// an enclosing batch or computation is still open.
func (b *Batcher) Compute(fn, flush func()) {
	b.computing++
	defer b.release(&b.computing, flush)

	fn()
}

func (b *Batcher) release(counter *int, flush func()) {
	*counter--
	if !b.IsBatching() && flush != nil {
		flush()
	}
}

func (r *Runtime) NewBatch(fn func()) {
	r.batcher.Batch(fn, r.Flush)
}

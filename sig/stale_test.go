package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStale(t *testing.T) {
	t.Run("holds dependents until released", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		NewEffect(func() {
			count.Read()
			runs++
		})

		count.Stale(1, false)
		count.Write(1)
		assert.Equal(t, 1, runs, "write while stale must wait for the release")

		count.Stale(-1, false)
		assert.Equal(t, 2, runs)
	})

	t.Run("release without change does not rerun", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		NewEffect(func() {
			count.Read()
			runs++
		})

		count.Stale(1, false)
		count.Stale(1, false)
		count.Stale(-1, false)
		count.Stale(-1, false)

		assert.Equal(t, 1, runs)
		assert.Equal(t, uint64(0), count.Version())
	})

	t.Run("fresh release reruns once", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		NewEffect(func() {
			count.Read()
			runs++
		})

		count.Stale(1, false)
		count.Stale(1, false)
		count.Stale(-1, true)
		assert.Equal(t, 1, runs)

		count.Stale(-1, false)
		assert.Equal(t, 2, runs)
		assert.Equal(t, uint64(1), count.Version())
	})

	t.Run("waits for every stale dependency", func(t *testing.T) {
		a := NewSignal(0)
		b := NewSignal(0)
		runs := 0

		NewEffect(func() {
			a.Read()
			b.Read()
			runs++
		})

		a.Stale(1, false)
		b.Stale(1, false)
		a.Stale(-1, true)
		assert.Equal(t, 1, runs)

		b.Stale(-1, false)
		assert.Equal(t, 2, runs)
	})

	t.Run("over release panics", func(t *testing.T) {
		count := NewSignal(0)

		assert.Panics(t, func() { count.Stale(-1, true) })
	})
}

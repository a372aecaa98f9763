package sig

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		log = append(log, fmt.Sprintf("%d", count.Read()))

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)
		log = append(log, fmt.Sprintf("%d", count.Read()))
		count.Write(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewSignal(0)

		NewEffect(func() {
			double.Write(count.Read() * 2)
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", double.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			count.Read()
			log = append(log, "running")

			NewEffect(func() {
				log = append(log, "running nested")

				OnCleanup(func() {
					log = append(log, "cleanup nested")
				})
			})

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("drops dependencies no longer read", func(t *testing.T) {
		useA := NewSignal(true)
		a := NewSignal(0)
		b := NewSignal(0)
		runs := 0

		NewEffect(func() {
			runs++
			if useA.Read() {
				a.Read()
			} else {
				b.Read()
			}
		})

		useA.Write(false)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 0, a.Subscribers())

		a.Write(1)
		assert.Equal(t, 2, runs)

		b.Write(1)
		assert.Equal(t, 3, runs)
	})

	t.Run("dispose unsubscribes", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0

		e := NewEffect(func() {
			count.Read()
			runs++
		})

		e.Dispose()
		count.Write(1)

		assert.Equal(t, 1, runs)
		assert.Equal(t, 0, count.Subscribers())
		assert.True(t, e.Disposed())
	})

	t.Run("writes during a flush are drained by the same flush", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		mirror := NewSignal(0)

		NewEffect(func() {
			c := count.Read()
			log = append(log, fmt.Sprintf("count %d", c))
			mirror.Write(c)
			log = append(log, "wrote")
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("mirror %d", mirror.Read()))
		})

		count.Write(1)

		assert.Equal(t, []string{
			"count 0",
			"wrote",
			"mirror 0",
			"count 1",
			"wrote",
			"mirror 1",
		}, log)
	})

	t.Run("a computation writing what it reads reruns after returning", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		e := NewEffect(func() {
			v := count.Read()
			log = append(log, fmt.Sprintf("run %d", v))
			if v < 2 {
				count.Write(v + 1)
			}
			log = append(log, fmt.Sprintf("end %d", v))
		})

		assert.Equal(t, []string{
			"run 0",
			"end 0",
			"run 1",
			"end 1",
			"run 2",
			"end 2",
		}, log)
		assert.Equal(t, 2, count.Read())
		assert.Equal(t, 3, e.Runs())
	})

	t.Run("writes made by a first run reach dependents once it returns", func(t *testing.T) {
		log := []string{}

		size := NewSignal(0.0)

		NewEffect(func() {
			log = append(log, fmt.Sprintf("size %v", size.Read()))
		})

		NewEffect(func() {
			log = append(log, "measure")
			size.Write(42)
			assert.True(t, Batching())
			log = append(log, "measured")
		})

		assert.Equal(t, []string{
			"size 0",
			"measure",
			"measured",
			"size 42",
		}, log)
		assert.False(t, Batching())
	})
}

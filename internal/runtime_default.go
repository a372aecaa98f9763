//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// Reactive graphs never cross goroutines: every goroutine gets its own
// runtime, keyed by goroutine id.
var runtimes sync.Map // int64 -> *Runtime

func GetRuntime() *Runtime {
	gid := goid.Get()
	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r, _ := runtimes.LoadOrStore(gid, NewRuntime())
	return r.(*Runtime)
}

// ReleaseRuntime forgets the runtime of the calling goroutine. Signals and
// effects created on it must not be used afterwards.
func ReleaseRuntime() {
	runtimes.Delete(goid.Get())
}

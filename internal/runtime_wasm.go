//go:build wasm

package internal

// wasm runs on a single thread, one runtime serves every goroutine.
var global = NewRuntime()

func GetRuntime() *Runtime {
	return global
}

// ReleaseRuntime replaces the runtime with a fresh one.
func ReleaseRuntime() {
	global = NewRuntime()
}

package internal

import "fmt"

// InvariantError is raised when the reactive graph reaches a state that can only
// be produced by a bug in the engine (never by user data).
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("sigstyle: invariant violated: %s", e.Msg)
}

// Assert panics with an *InvariantError when cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
	}
}

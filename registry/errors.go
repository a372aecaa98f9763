package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed is wrapped by every registration failure.
	ErrMalformed = errors.New("malformed style registration")

	ErrColorScheme = errors.New("invalid color scheme")
)

// RegistrationError lists every problem found in a rule set.
type RegistrationError struct {
	Problems []string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMalformed, strings.Join(e.Problems, "; "))
}

func (e *RegistrationError) Unwrap() error {
	return ErrMalformed
}

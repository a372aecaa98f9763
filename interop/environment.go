package interop

import (
	"maps"
	"weak"

	"github.com/AnatoleLucet/sigstyle/internal"
)

// DefaultContainer is the slot unnamed container queries resolve against.
const DefaultContainer = "__default"

// Environment is what a component hands down to its subtree: resolved
// variables and the containers in scope. Extending it always returns a copy.
//
// Containers are held weakly so being in scope never keeps an unmounted
// component alive.
type Environment struct {
	variables  map[string]any
	containers map[string]weak.Pointer[ComponentState]
	depth      int
	frozen     bool
}

var root = &Environment{frozen: true}

// Root returns the empty, frozen environment at the top of every tree.
func Root() *Environment {
	return root
}

// Variable returns the value an ancestor declared for name.
func (env *Environment) Variable(name string) (any, bool) {
	if env == nil {
		return nil, false
	}
	v, ok := env.variables[name]
	return v, ok
}

// Variables returns a copy of every variable in scope.
func (env *Environment) Variables() map[string]any {
	if env == nil {
		return nil
	}
	return maps.Clone(env.variables)
}

// Container returns the mounted component exposing name, or nil. An empty
// name resolves the nearest container.
func (env *Environment) Container(name string) *ComponentState {
	if env == nil {
		return nil
	}
	if name == "" {
		name = DefaultContainer
	}

	ref, ok := env.containers[name]
	if !ok {
		return nil
	}

	c := ref.Value()
	if c == nil || c.Unmounted() {
		return nil
	}

	return c
}

// Depth is the number of engine components above this environment.
func (env *Environment) Depth() int {
	if env == nil {
		return 0
	}
	return env.depth
}

func (env *Environment) Frozen() bool {
	return env == nil || env.frozen
}

// derive starts the extension of env for the children of a component.
func (env *Environment) derive() *Environment {
	next := &Environment{depth: env.Depth() + 1}
	if env != nil {
		next.variables = env.variables
		next.containers = env.containers
	}
	return next
}

// WithVariables returns a copy of env with vars added over the inherited ones.
func (env *Environment) WithVariables(vars map[string]any) *Environment {
	next := env.derive()
	next.depth = env.Depth()
	return next.withVariables(vars).freeze()
}

// WithContainers returns a copy of env where names, and the default slot,
// resolve to c.
func (env *Environment) WithContainers(names []string, c *ComponentState) *Environment {
	next := env.derive()
	next.depth = env.Depth()
	return next.withContainers(names, c).freeze()
}

func (env *Environment) withVariables(vars map[string]any) *Environment {
	internal.Assert(!env.frozen, "variables added to a frozen environment")
	if len(vars) == 0 {
		return env
	}

	next := make(map[string]any, len(env.variables)+len(vars))
	maps.Copy(next, env.variables)
	maps.Copy(next, vars)
	env.variables = next

	return env
}

func (env *Environment) withContainers(names []string, c *ComponentState) *Environment {
	internal.Assert(!env.frozen, "containers added to a frozen environment")
	if len(names) == 0 {
		return env
	}

	ref := weak.Make(c)
	next := maps.Clone(env.containers)
	if next == nil {
		next = make(map[string]weak.Pointer[ComponentState], len(names)+1)
	}
	for _, name := range names {
		next[name] = ref
	}
	next[DefaultContainer] = ref
	env.containers = next

	return env
}

func (env *Environment) freeze() *Environment {
	env.frozen = true
	return env
}

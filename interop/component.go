package interop

import (
	"maps"
	"slices"

	"github.com/AnatoleLucet/sigstyle/internal"
	"github.com/AnatoleLucet/sigstyle/sig"
	"github.com/AnatoleLucet/sigstyle/style"
)

// Size is a measured layout.
type Size struct {
	Width  float64
	Height float64
}

// ComponentState is the reactive state of one mounted element: its
// interaction and layout signals, created on first use, and one PropState
// per configured prop.
type ComponentState struct {
	engine *Engine
	name   string
	owner  *sig.Owner
	states []*PropState
	depth  int

	hover         *sig.Signal[bool]
	active        *sig.Signal[bool]
	focus         *sig.Signal[bool]
	layout        *sig.Signal[Size]
	containerType *sig.Signal[style.ContainerType]

	// child environment of the last render and what it was built from
	childEnv   *Environment
	childBase  *Environment
	childVars  map[string]any
	childNames []string

	unmounted bool
}

func (c *ComponentState) Name() string { return c.name }

// Depth is the number of engine components above c in the tree.
func (c *ComponentState) Depth() int { return c.depth }

func (c *ComponentState) PropStates() []*PropState { return c.states }

func (c *ComponentState) Unmounted() bool { return c.unmounted }

func (c *ComponentState) hoverSignal() *sig.Signal[bool] {
	if c.hover == nil {
		c.hover = sig.NewSignal(false)
	}
	return c.hover
}

func (c *ComponentState) activeSignal() *sig.Signal[bool] {
	if c.active == nil {
		c.active = sig.NewSignal(false)
	}
	return c.active
}

func (c *ComponentState) focusSignal() *sig.Signal[bool] {
	if c.focus == nil {
		c.focus = sig.NewSignal(false)
	}
	return c.focus
}

func (c *ComponentState) layoutSignal() *sig.Signal[Size] {
	if c.layout == nil {
		c.layout = sig.NewSignal(Size{})
	}
	return c.layout
}

func (c *ComponentState) containerTypeSignal() *sig.Signal[style.ContainerType] {
	if c.containerType == nil {
		c.containerType = sig.NewSignal(style.ContainerNormal)
	}
	return c.containerType
}

func (c *ComponentState) Hover(e *sig.Effect) bool  { return c.hoverSignal().Get(e) }
func (c *ComponentState) Active(e *sig.Effect) bool { return c.activeSignal().Get(e) }
func (c *ComponentState) Focus(e *sig.Effect) bool  { return c.focusSignal().Get(e) }

func (c *ComponentState) Layout(e *sig.Effect) (float64, float64) {
	size := c.layoutSignal().Get(e)
	return size.Width, size.Height
}

// ContainerType is the type c declares as a container, normal otherwise.
func (c *ComponentState) ContainerType(e *sig.Effect) style.ContainerType {
	return c.containerTypeSignal().Get(e)
}

func (c *ComponentState) SetHover(v bool)  { c.hoverSignal().Write(v) }
func (c *ComponentState) SetActive(v bool) { c.activeSignal().Write(v) }
func (c *ComponentState) SetFocus(v bool)  { c.focusSignal().Write(v) }

func (c *ComponentState) SetLayout(width, height float64) {
	c.layoutSignal().Write(Size{Width: width, Height: height})
}

// Rerender queues c on the engine's render queue.
func (c *ComponentState) Rerender() {
	if c.unmounted {
		return
	}
	c.engine.queue.Schedule(c)
}

// Unmount disposes every prop state. Descendants querying c as a container
// are told to recheck once the disposal is done.
func (c *ComponentState) Unmount() {
	if c.unmounted {
		return
	}

	if c.containerType != nil {
		c.containerType.Stale(1, false)
		defer c.containerType.Stale(-1, true)
	}

	c.unmounted = true
	c.owner.Dispose()
	c.childEnv = nil

	c.engine.logger.Debug("component unmounted", "component", c.name)
}

// Result is what a render of a component produces.
type Result struct {
	// Props to render: incoming props with resolved styles substituted,
	// consumed source props removed and ref set.
	Props map[string]any
	// Env is the frozen environment to hand to children.
	Env *Environment
	// Rerender queues the component. Call it when an interaction or layout
	// event the integration owns changes.
	Rerender func()

	RequiresLayout bool
	HasHover       bool
	HasActive      bool
	HasFocus       bool

	// Animated holds animation metadata per target prop.
	Animated map[string]*Animated
	Warnings []style.Warning
}

// Interop resolves the configured props of c against env for one render.
func (c *ComponentState) Interop(props map[string]any, ref any, env *Environment) *Result {
	internal.Assert(!c.unmounted, "render of unmounted component %q", c.name)
	if env == nil {
		env = Root()
	}
	c.depth = env.Depth()

	out := maps.Clone(props)
	if out == nil {
		out = map[string]any{}
	}
	if ref != nil {
		out["ref"] = ref
	}

	res := &Result{Rerender: c.Rerender}

	vars := map[string]any{}
	var names []string
	ctype := style.ContainerNormal

	for _, p := range c.states {
		p.update(props, env)

		if p.config.Target != p.config.Source {
			delete(out, p.config.Source)
		}
		maps.Copy(out, p.props)

		maps.Copy(vars, p.variables)
		if len(p.containerNames) > 0 {
			names = append(names, p.containerNames...)
			ctype = p.containerType
		}

		res.RequiresLayout = res.RequiresLayout || p.requiresLayout
		res.HasHover = res.HasHover || p.hasHover
		res.HasActive = res.HasActive || p.hasActive
		res.HasFocus = res.HasFocus || p.hasFocus
		res.Warnings = append(res.Warnings, p.warnings...)

		if p.animated != nil {
			if res.Animated == nil {
				res.Animated = map[string]*Animated{}
			}
			res.Animated[p.config.Target] = p.animated
		}
	}

	if len(names) > 0 {
		c.containerTypeSignal().Write(ctype)
	} else if c.containerType != nil {
		c.containerType.Write(style.ContainerNormal)
	}

	res.Props = out
	res.Env = c.extend(env, vars, names)

	return res
}

// extend builds the environment for the children, reusing the previous one
// while nothing it depends on changed.
func (c *ComponentState) extend(env *Environment, vars map[string]any, names []string) *Environment {
	if c.childEnv != nil && c.childBase == env && equalFlat(vars, c.childVars) && slices.Equal(names, c.childNames) {
		return c.childEnv
	}

	child := env.derive().withVariables(vars)
	if len(names) > 0 {
		child = child.withContainers(names, c)
	}

	c.childEnv = child.freeze()
	c.childBase = env
	c.childVars = vars
	c.childNames = names

	return c.childEnv
}

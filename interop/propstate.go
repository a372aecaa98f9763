package interop

import (
	"maps"
	"slices"
	"time"

	"github.com/AnatoleLucet/sigstyle/condition"
	"github.com/AnatoleLucet/sigstyle/sig"
	"github.com/AnatoleLucet/sigstyle/style"
)

// Config maps a source prop holding class names to the prop receiving the
// resolved style, e.g. className -> style.
type Config struct {
	Source string
	Target string
}

// StyleConfig is the usual className -> style mapping.
var StyleConfig = Config{Source: "className", Target: "style"}

// Animated is the animation metadata of a resolved prop, handed unchanged to
// whatever drives animations downstream.
type Animated struct {
	Animations *style.Animations
	Transition *style.Transition
	Keyframes  map[string]*style.Animation
}

// PropState resolves the rules of one source prop of a component. Its effect
// subscribes to whatever the last evaluation read and reevaluates when one
// of them changes.
type PropState struct {
	config    Config
	component *ComponentState
	effect    *sig.Effect

	// inputs of the current render
	classNames    string
	inline        any
	env           *Environment
	inlineChanged bool
	rendering     bool

	resolved bool
	version  uint64
	matched  []*style.ExtractedStyle
	dynamic  bool

	props          map[string]any
	variables      map[string]any
	containerNames []string
	containerType  style.ContainerType
	requiresLayout bool
	hasHover       bool
	hasActive      bool
	hasFocus       bool
	animated       *Animated
	warnings       []style.Warning
}

func newPropState(c *ComponentState, config Config) *PropState {
	p := &PropState{config: config, component: c}
	p.effect = sig.NewLazyEffect(p.compute)
	return p
}

func (p *PropState) Config() Config { return p.config }

// Effect is the effect evaluating this prop state.
func (p *PropState) Effect() *sig.Effect { return p.effect }

// Props returns the props produced by the last evaluation.
func (p *PropState) Props() map[string]any { return p.props }

func (p *PropState) Warnings() []style.Warning { return p.warnings }

// update evaluates the prop state during a render, skipping the evaluation
// when none of its render inputs changed.
func (p *PropState) update(props map[string]any, env *Environment) {
	classNames, _ := props[p.config.Source].(string)
	inline := props[p.config.Target]

	sameInline := sameValue(inline, p.inline)
	if p.resolved && classNames == p.classNames && env == p.env && sameInline {
		return
	}

	p.classNames = classNames
	p.env = env
	p.inline = inline
	p.inlineChanged = p.inlineChanged || !sameInline

	p.rendering = true
	defer func() { p.rendering = false }()

	p.effect.Run()
}

func (p *PropState) compute() {
	eng := p.component.engine
	defer eng.metrics.Computation(time.Now())

	var (
		matched                 []*style.ExtractedStyle
		hover, active, focus    bool
		requiresLayout, dynamic bool
	)

	version := eng.registry.Version(p.effect)
	for _, s := range eng.registry.Styles(p.effect, p.classNames) {
		if s.PseudoClasses != nil {
			hover = hover || s.PseudoClasses.Hover
			active = active || s.PseudoClasses.Active
			focus = focus || s.PseudoClasses.Focus
		}
		requiresLayout = requiresLayout || s.NeedsLayout()

		if p.matches(s) {
			matched = append(matched, s)
			dynamic = dynamic || isDynamic(s)
		}
	}

	// same rules of the same registration, none of them dynamic: nothing we
	// output can differ
	if p.resolved && version == p.version && !dynamic && !p.dynamic && !p.inlineChanged &&
		slices.Equal(matched, p.matched) &&
		hover == p.hasHover && active == p.hasActive && focus == p.hasFocus &&
		requiresLayout == p.requiresLayout {
		p.settle(false)
		return
	}

	r := &Resolver{engine: eng, effect: p.effect, env: p.env, local: map[string]any{}}

	for _, s := range matched {
		for _, name := range slices.Sorted(maps.Keys(s.Variables)) {
			r.property = name
			if v, ok := r.Resolve(s.Variables[name]); ok {
				r.local[name] = v
			}
		}
	}

	props := map[string]any{}
	target := map[string]any{}
	var (
		names    []string
		ctype    style.ContainerType
		animated *Animated
		warnings []style.Warning
	)

	for _, s := range matched {
		warnings = append(warnings, s.Warnings...)

		if s.Container != nil {
			names = append(names, s.Container.Names...)
			ctype = s.Container.Type
		}

		if s.Animations != nil || s.Transition != nil {
			if animated == nil {
				animated = &Animated{}
			}
			if s.Animations != nil {
				animated.Animations = s.Animations
			}
			if s.Transition != nil {
				animated.Transition = s.Transition
			}
		}

		switch m := s.Prop; {
		case m == nil:
			r.resolveStyle(target, s.Style)
		case m.Attribute != "":
			rest := maps.Clone(s.Style)
			delete(rest, m.Attribute)
			r.resolveStyle(target, rest)

			if v, ok := s.Style[m.Attribute]; ok {
				r.property = m.Attribute
				if resolved, ok := r.Resolve(v); ok {
					props[m.Target] = resolved
				}
				r.property = ""
			}
		default:
			dst, _ := props[m.Target].(map[string]any)
			if dst == nil {
				dst = map[string]any{}
				props[m.Target] = dst
			}
			r.resolveStyle(dst, s.Style)
		}
	}

	if animated != nil && animated.Animations != nil {
		animated.Keyframes = map[string]*style.Animation{}
		for _, name := range animated.Animations.Name {
			if anim, ok := eng.registry.Keyframes(p.effect, name); ok {
				animated.Keyframes[name] = anim
				requiresLayout = requiresLayout || anim.RequiresLayout
			}
		}
	}

	mergeInline(target, p.inline)
	if len(target) > 0 || p.inline != nil {
		props[p.config.Target] = target
	}

	warnings = append(warnings, r.warnings...)
	for _, w := range warnings {
		eng.metrics.Warning(string(w.Type))
		eng.logger.Debug("style warning", "component", p.component.name, "warning", w.String())
	}

	if ctype == "" && len(names) > 0 {
		ctype = style.ContainerNormal
	}

	changed := !p.resolved ||
		!equalProps(props, p.props) ||
		!equalFlat(r.local, p.variables) ||
		!slices.Equal(names, p.containerNames) ||
		ctype != p.containerType ||
		requiresLayout != p.requiresLayout ||
		hover != p.hasHover || active != p.hasActive || focus != p.hasFocus ||
		!sameAnimated(animated, p.animated)

	p.version = version
	p.matched = matched
	p.dynamic = dynamic || r.runtime
	p.inlineChanged = false
	p.resolved = true
	p.warnings = warnings

	p.props = props
	p.variables = r.local
	p.containerNames = names
	p.containerType = ctype
	p.requiresLayout = requiresLayout
	p.hasHover, p.hasActive, p.hasFocus = hover, active, focus
	p.animated = animated

	p.settle(changed)
}

// settle reports the outcome of an evaluation triggered by a signal. During
// a render the caller picks the result up itself.
func (p *PropState) settle(changed bool) {
	if p.rendering {
		return
	}

	eng := p.component.engine
	if !changed {
		eng.metrics.Suppressed()
		return
	}

	eng.metrics.Rerender()
	p.component.Rerender()
}

func (p *PropState) matches(s *style.ExtractedStyle) bool {
	eng := p.component.engine

	if !condition.MatchesMedia(s.Media, eng.viewport, p.effect) {
		return false
	}
	if !condition.MatchesPseudoClass(s.PseudoClasses, p.component, p.effect) {
		return false
	}

	return condition.MatchesContainerQuery(s.ContainerQuery, p.lookup, p.effect)
}

func (p *PropState) lookup(name string) condition.Container {
	if c := p.env.Container(name); c != nil {
		return c
	}
	return nil
}

func (p *PropState) dispose() {
	p.effect.Dispose()
}

func sameAnimated(a, b *Animated) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Animations == b.Animations &&
		a.Transition == b.Transition &&
		maps.Equal(a.Keyframes, b.Keyframes)
}

func isDynamic(s *style.ExtractedStyle) bool {
	if s.Dynamic() {
		return true
	}

	for _, v := range s.Variables {
		if style.IsDynamic(v) {
			return true
		}
	}

	return false
}

// mergeInline applies an inline style, a map or a list of maps, over target.
func mergeInline(target map[string]any, inline any) {
	switch v := inline.(type) {
	case map[string]any:
		maps.Copy(target, v)
	case []map[string]any:
		for _, m := range v {
			maps.Copy(target, m)
		}
	case []any:
		for _, item := range v {
			mergeInline(target, item)
		}
	}
}

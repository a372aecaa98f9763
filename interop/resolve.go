package interop

import (
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/AnatoleLucet/sigstyle/device"
	"github.com/AnatoleLucet/sigstyle/registry"
	"github.com/AnatoleLucet/sigstyle/sig"
	"github.com/AnatoleLucet/sigstyle/style"
)

// maxCallDepth bounds nested runtime calls, which also stops variables
// referring to themselves.
const maxCallDepth = 32

// incompatibleProperties can't be expressed on native and are dropped.
var incompatibleProperties = map[string]struct{}{
	"backgroundAttachment": {},
	"backgroundClip":       {},
	"backgroundImage":      {},
	"backgroundRepeat":     {},
	"backgroundSize":       {},
	"clear":                {},
	"clipPath":             {},
	"float":                {},
	"gridColumn":           {},
	"gridRow":              {},
	"gridTemplateColumns":  {},
	"gridTemplateRows":     {},
	"listStyleType":        {},
	"outline":              {},
	"outlineOffset":        {},
	"textOverflow":         {},
	"whiteSpace":           {},
	"wordBreak":            {},
}

var numberPattern = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))([a-z%]*)$`)

// Resolver turns style values into concrete values during one prop state
// evaluation. Every signal it reads subscribes the evaluating effect.
type Resolver struct {
	engine *Engine
	effect *sig.Effect
	env    *Environment
	local  map[string]any

	property string
	depth    int
	// set when a literal depended on a signal (rem, viewport units)
	runtime  bool
	warnings []style.Warning
}

func (r *Resolver) Effect() *sig.Effect          { return r.effect }
func (r *Resolver) Device() *device.Device       { return r.engine.device }
func (r *Resolver) Registry() *registry.Registry { return r.engine.registry }

// Property is the style property being resolved.
func (r *Resolver) Property() string { return r.property }

// Warn records a warning against the current property.
func (r *Resolver) Warn(typ style.WarningType, value any) {
	r.warnings = append(r.warnings, style.Warning{Type: typ, Property: r.property, Value: value})
}

// Resolve evaluates v. It reports false when v resolves to nothing, in which
// case the property is omitted.
func (r *Resolver) Resolve(v style.Value) (any, bool) {
	switch v := v.(type) {
	case style.Literal:
		return r.literal(v.Value)

	case style.RuntimeCall:
		return r.call(v)

	case style.Nested:
		out := make([]any, 0, len(v))
		for _, item := range v {
			resolved, ok := r.Resolve(item)
			if !ok {
				return nil, false
			}
			out = append(out, resolved)
		}
		return out, true

	case style.Record:
		out := make(map[string]any, len(v))
		for key, item := range v {
			resolved, ok := r.Resolve(item)
			if !ok {
				return nil, false
			}
			out[key] = resolved
		}
		return out, true
	}

	return nil, false
}

// Number resolves v and converts the result to a number.
func (r *Resolver) Number(v style.Value) (float64, bool) {
	resolved, ok := r.Resolve(v)
	if !ok {
		return 0, false
	}

	n, ok := resolved.(float64)
	return n, ok
}

// String returns the raw text of a string literal, or the resolved value when
// it is a string.
func (r *Resolver) String(v style.Value) (string, bool) {
	if lit, ok := v.(style.Literal); ok {
		s, ok := lit.Value.(string)
		return s, ok
	}

	resolved, ok := r.Resolve(v)
	if !ok {
		return "", false
	}

	s, ok := resolved.(string)
	return s, ok
}

// Variable looks name up in the rule's own declarations, then in the
// environment, then in the registered defaults.
func (r *Resolver) Variable(name string) (any, bool) {
	if v, ok := r.local[name]; ok {
		return v, true
	}
	if v, ok := r.env.Variable(name); ok {
		return v, true
	}
	if v, ok := r.engine.registry.Variable(r.effect, name); ok {
		return r.Resolve(v)
	}

	return nil, false
}

func (r *Resolver) call(c style.RuntimeCall) (any, bool) {
	fn, ok := r.engine.function(c.Name)
	if !ok {
		r.Warn(style.WarningFunctionValue, style.Format(c))
		return nil, false
	}

	if r.depth >= maxCallDepth {
		r.Warn(style.WarningValue, style.Format(c))
		return nil, false
	}

	r.depth++
	defer func() { r.depth-- }()

	return fn(r, c.Arguments)
}

func (r *Resolver) literal(v any) (any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, false
	case string:
		return r.parse(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	}

	return v, true
}

// parse converts numeric strings with a length unit to numbers. Other
// strings (colors, keywords, angles, percentages) pass through.
func (r *Resolver) parse(s string) (any, bool) {
	m := numberPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return s, true
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return s, true
	}

	switch m[2] {
	case "", "px":
		return n, true
	case "rem":
		r.runtime = true
		return n * r.engine.registry.Rem(r.effect), true
	case "vw":
		r.runtime = true
		return n / 100 * r.engine.device.Width(r.effect), true
	case "vh":
		r.runtime = true
		return n / 100 * r.engine.device.Height(r.effect), true
	case "%", "deg", "rad", "grad", "turn", "ms", "s":
		return s, true
	}

	r.Warn(style.WarningValue, s)
	return nil, false
}

// resolveStyle merges values into dst. Properties resolving to nothing are
// removed so they don't keep a value from an earlier rule.
func (r *Resolver) resolveStyle(dst map[string]any, values map[string]style.Value) {
	for _, prop := range slices.Sorted(maps.Keys(values)) {
		r.property = prop

		if _, ok := incompatibleProperties[prop]; ok {
			r.Warn(style.WarningProperty, nil)
			continue
		}

		v, ok := r.Resolve(values[prop])
		if !ok {
			delete(dst, prop)
			continue
		}
		dst[prop] = v
	}
	r.property = ""
}

// equalProps compares two resolved prop maps key by key, one level into
// nested style maps.
func equalProps(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}

	for key, av := range a {
		bv, ok := b[key]
		if !ok {
			return false
		}

		am, aIsMap := av.(map[string]any)
		bm, bIsMap := bv.(map[string]any)
		if aIsMap || bIsMap {
			if !aIsMap || !bIsMap || !equalFlat(am, bm) {
				return false
			}
			continue
		}

		if !sameValue(av, bv) {
			return false
		}
	}

	return true
}

func equalFlat(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}

	for key, av := range a {
		bv, ok := b[key]
		if !ok || !sameValue(av, bv) {
			return false
		}
	}

	return true
}

func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	t := reflect.TypeOf(a)
	if t == reflect.TypeOf(b) && t.Comparable() {
		return a == b
	}

	return reflect.DeepEqual(a, b)
}

package interop

import (
	"math"
	"strconv"

	"github.com/AnatoleLucet/sigstyle/style"
)

// Function is a runtime function callable from style values. Arguments come
// unresolved so a function only evaluates, and subscribes to, what it uses.
type Function func(r *Resolver, args []style.Value) (any, bool)

// PlatformColor is an opaque reference to colors defined by the platform,
// tried in order.
type PlatformColor struct {
	Names []string `yaml:"platformColor"`
}

func builtinFunctions() map[string]Function {
	return map[string]Function{
		"var":                       varFunc,
		"pixelRatio":                pixelRatio,
		"fontScale":                 fontScale,
		"hairlineWidth":             hairlineWidth,
		"roundToNearestPixel":       roundToNearestPixel,
		"getPixelSizeForLayoutSize": getPixelSizeForLayoutSize,
		"platformSelect":            platformSelect,
		"platformColor":             platformColor,
		"rem":                       rem,
	}
}

// var(name, fallback?)
func varFunc(r *Resolver, args []style.Value) (any, bool) {
	if len(args) == 0 {
		return nil, false
	}

	if name, ok := r.String(args[0]); ok {
		if v, ok := r.Variable(name); ok {
			return v, true
		}
	}

	if len(args) > 1 {
		return r.Resolve(args[1])
	}

	return nil, false
}

// pixelRatio() returns the ratio, pixelRatio(n) scales n by it and
// pixelRatio({1: a, 2: b}) picks the entry for the current ratio.
func pixelRatio(r *Resolver, args []style.Value) (any, bool) {
	return scaled(r, r.Device().PixelRatio(r.Effect()), args)
}

func fontScale(r *Resolver, args []style.Value) (any, bool) {
	return scaled(r, r.Device().FontScale(r.Effect()), args)
}

func scaled(r *Resolver, current float64, args []style.Value) (any, bool) {
	if len(args) == 0 {
		return current, true
	}

	if table, ok := args[0].(style.Record); ok {
		return pick(r, current, table)
	}

	n, ok := r.Number(args[0])
	if !ok {
		return nil, false
	}

	return n * current, true
}

// pick resolves the entry with the largest numeric key not above current.
func pick(r *Resolver, current float64, table style.Record) (any, bool) {
	best := math.Inf(-1)
	var choice style.Value

	for key, v := range table {
		k, err := strconv.ParseFloat(key, 64)
		if err != nil || k > current {
			continue
		}
		if k > best {
			best, choice = k, v
		}
	}

	if choice == nil {
		return nil, false
	}

	return r.Resolve(choice)
}

// hairlineWidth is the thinnest visible line: 0.4 rounded to the nearest
// physical pixel, at least one pixel.
func hairlineWidth(r *Resolver, _ []style.Value) (any, bool) {
	ratio := r.Device().PixelRatio(r.Effect())
	if ratio <= 0 {
		return 1.0, true
	}

	width := math.Round(0.4*ratio) / ratio
	if width == 0 {
		width = 1 / ratio
	}

	return width, true
}

func roundToNearestPixel(r *Resolver, args []style.Value) (any, bool) {
	if len(args) == 0 {
		return nil, false
	}

	n, ok := r.Number(args[0])
	ratio := r.Device().PixelRatio(r.Effect())
	if !ok || ratio <= 0 {
		return nil, false
	}

	return math.Round(n*ratio) / ratio, true
}

func getPixelSizeForLayoutSize(r *Resolver, args []style.Value) (any, bool) {
	if len(args) == 0 {
		return nil, false
	}

	n, ok := r.Number(args[0])
	if !ok {
		return nil, false
	}

	return math.Round(n * r.Device().PixelRatio(r.Effect())), true
}

// platformSelect({ios: a, android: b, default: c})
func platformSelect(r *Resolver, args []style.Value) (any, bool) {
	if len(args) == 0 {
		return nil, false
	}

	table, ok := args[0].(style.Record)
	if !ok {
		return nil, false
	}

	if v, ok := table[r.Device().OS(r.Effect())]; ok {
		return r.Resolve(v)
	}
	if v, ok := table["default"]; ok {
		return r.Resolve(v)
	}

	return nil, false
}

func platformColor(r *Resolver, args []style.Value) (any, bool) {
	var names []string
	for _, arg := range args {
		if name, ok := r.String(arg); ok {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return nil, false
	}

	return PlatformColor{Names: names}, true
}

// rem() returns the root font size, rem(n) scales n by it.
func rem(r *Resolver, args []style.Value) (any, bool) {
	return scaled(r, r.Registry().Rem(r.Effect()), args)
}

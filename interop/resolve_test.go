package interop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/sigstyle/registry"
	"github.com/AnatoleLucet/sigstyle/style"
)

func newResolver(eng *Engine) *Resolver {
	return &Resolver{engine: eng, env: Root(), local: map[string]any{}}
}

func TestResolveLiterals(t *testing.T) {
	eng := newEngine(t, nil)
	r := newResolver(eng)

	tests := []struct {
		in   any
		want any
	}{
		{"16", 16.0},
		{"-2.5", -2.5},
		{"10px", 10.0},
		{"2rem", 32.0},
		{".5rem", 8.0},
		{"50vw", 195.0},
		{"10vh", 84.4},
		{"50%", "50%"},
		{"45deg", "45deg"},
		{"150ms", "150ms"},
		{"red", "red"},
		{"#fff", "#fff"},
		{"bold", "bold"},
		{12, 12.0},
		{true, true},
	}

	for _, tt := range tests {
		got, ok := r.Resolve(style.Literal{Value: tt.in})
		assert.True(t, ok, "%v", tt.in)
		if f, isFloat := tt.want.(float64); isFloat {
			assert.InDelta(t, f, got, 1e-9, "%v", tt.in)
			continue
		}
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}

	_, ok := r.Resolve(style.String("3em"))
	assert.False(t, ok)
	assert.Equal(t, []style.Warning{{Type: style.WarningValue, Value: "3em"}}, r.warnings)

	_, ok = r.Resolve(style.Literal{})
	assert.False(t, ok)
}

func TestRuntimeFunctions(t *testing.T) {
	rec := func(kv ...any) style.Record {
		out := style.Record{}
		for i := 0; i < len(kv); i += 2 {
			out[kv[i].(string)] = kv[i+1].(style.Value)
		}
		return out
	}

	tests := []struct {
		name  string
		value style.Value
		ratio float64
		want  any
	}{
		{"pixelRatio", style.Runtime("pixelRatio"), 2, 2.0},
		{"pixelRatio scales", style.Runtime("pixelRatio", style.Number(3)), 2, 6.0},
		{"pixelRatio table", style.Runtime("pixelRatio", rec("1", style.String("16"), "2", style.String("32"))), 2, 32.0},
		{"pixelRatio table picks the closest lower", style.Runtime("pixelRatio", rec("1", style.String("1rem"), "2", style.String("2rem"))), 3, 32.0},
		{"fontScale", style.Runtime("fontScale"), 2, 1.0},
		{"hairlineWidth", style.Runtime("hairlineWidth"), 2, 0.5},
		{"hairlineWidth low density", style.Runtime("hairlineWidth"), 1, 1.0},
		{"roundToNearestPixel", style.Runtime("roundToNearestPixel", style.Number(8.4)), 2, 8.5},
		{"getPixelSizeForLayoutSize", style.Runtime("getPixelSizeForLayoutSize", style.Number(8.4)), 2, 17.0},
		{"platformSelect", style.Runtime("platformSelect", rec("ios", style.String("1rem"), "default", style.Number(2))), 2, 16.0},
		{"platformSelect default", style.Runtime("platformSelect", rec("android", style.String("1rem"), "default", style.Number(2))), 2, 2.0},
		{"nested", style.Runtime("platformSelect", rec(
			"ios", style.Runtime("pixelRatio", rec(
				"1", style.String("1rem"),
				"2", style.Runtime("var", style.String("--empty-var"), style.Runtime("hairlineWidth")),
			)),
			"default", style.Number(2),
		)), 2, 0.5},
		{"rem", style.Runtime("rem"), 2, 16.0},
		{"rem scales", style.Runtime("rem", style.Number(1.5)), 2, 24.0},
		{"platformColor", style.Runtime("platformColor", style.String("systemBlue"), style.String("blue")), 2, PlatformColor{Names: []string{"systemBlue", "blue"}}},
		{"nested values", style.Nested{style.String("1px"), style.Runtime("rem")}, 2, []any{1.0, 16.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newEngine(t, nil)
			eng.Device().SetPixelRatio(tt.ratio)

			got, ok := newResolver(eng).Resolve(tt.value)

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("variables self reference resolve to nothing", func(t *testing.T) {
		eng := newEngine(t, nil)
		require.NoError(t, eng.Register(registry.Options{
			DefaultVariables: map[string]style.Value{"--loop": style.Var("--loop")},
		}))

		r := newResolver(eng)
		_, ok := r.Resolve(style.Var("--loop"))

		assert.False(t, ok)
		assert.Len(t, r.warnings, 1)
	})

	t.Run("unknown functions", func(t *testing.T) {
		r := newResolver(newEngine(t, nil))

		_, ok := r.Resolve(style.Runtime("env", style.String("safe-area-inset-top")))

		assert.False(t, ok)
		assert.Equal(t, []style.Warning{{Type: style.WarningFunctionValue, Value: "env(safe-area-inset-top)"}}, r.warnings)
	})

	t.Run("registered functions", func(t *testing.T) {
		eng := newEngine(t, rules{
			"inset": {rule(map[string]style.Value{"paddingTop": style.Runtime("safeArea", style.String("top"))})},
		})
		eng.RegisterFunction("safeArea", func(r *Resolver, args []style.Value) (any, bool) {
			side, _ := r.String(args[0])
			return map[string]float64{"top": 47}[side], true
		})

		res := eng.NewComponent("View").Interop(class("inset"), nil, nil)

		assert.Equal(t, map[string]any{"paddingTop": 47.0}, styleOf(res))
	})
}

func TestEqualProps(t *testing.T) {
	assert.True(t, equalProps(
		map[string]any{"style": map[string]any{"color": "red", "transform": []any{1.0}}, "testID": "x"},
		map[string]any{"style": map[string]any{"color": "red", "transform": []any{1.0}}, "testID": "x"},
	))
	assert.False(t, equalProps(
		map[string]any{"style": map[string]any{"color": "red"}},
		map[string]any{"style": map[string]any{"color": "blue"}},
	))
	assert.False(t, equalProps(
		map[string]any{"style": map[string]any{"color": "red"}},
		map[string]any{"style": "red"},
	))
	assert.False(t, equalProps(map[string]any{"a": 1.0}, map[string]any{"b": 1.0}))
}

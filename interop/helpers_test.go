package interop

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/sigstyle/device"
	"github.com/AnatoleLucet/sigstyle/metrics"
	"github.com/AnatoleLucet/sigstyle/registry"
	"github.com/AnatoleLucet/sigstyle/style"
)

type rules map[string][]*style.ExtractedStyle

func newEngine(t *testing.T, declarations rules) *Engine {
	t.Helper()

	dev := device.New(device.DefaultMetrics)
	eng := New(registry.New(dev, nil), dev, WithMetrics(metrics.New()))
	require.NoError(t, eng.Register(registry.Options{Declarations: declarations}))

	return eng
}

func rule(props map[string]style.Value) *style.ExtractedStyle {
	return &style.ExtractedStyle{Style: props}
}

func color(c string) *style.ExtractedStyle {
	return rule(map[string]style.Value{"color": style.String(c)})
}

func class(name string) map[string]any {
	return map[string]any{"className": name}
}

func styleOf(res *Result) map[string]any {
	s, _ := res.Props["style"].(map[string]any)
	return s
}

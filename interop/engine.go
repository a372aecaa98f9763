// Package interop connects compiled style rules to mounted components.
//
// Each component gets a ComponentState holding one PropState per configured
// prop. A PropState is an effect: it evaluates the rules named by its source
// prop against the device, the registry and the Environment received from
// its parent, and reevaluates whenever something it read changes. A change
// found outside of a render queues the component on the RenderQueue instead
// of rerendering it in place.
package interop

import (
	"log/slog"

	"github.com/AnatoleLucet/sigstyle/device"
	"github.com/AnatoleLucet/sigstyle/internal/logging"
	"github.com/AnatoleLucet/sigstyle/metrics"
	"github.com/AnatoleLucet/sigstyle/registry"
	"github.com/AnatoleLucet/sigstyle/sig"
)

type Engine struct {
	logger    *slog.Logger
	metrics   *metrics.Collector
	device    *device.Device
	registry  *registry.Registry
	functions map[string]Function
	queue     *RenderQueue
	viewport  viewport

	initial device.Metrics
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithFunction adds or replaces a runtime function.
func WithFunction(name string, fn Function) Option {
	return func(e *Engine) { e.functions[name] = fn }
}

func New(reg *registry.Registry, dev *device.Device, opts ...Option) *Engine {
	e := &Engine{
		logger:    logging.NewNop(),
		device:    dev,
		registry:  reg,
		functions: builtinFunctions(),
		queue:     NewRenderQueue(),
		initial:   dev.Snapshot(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.viewport = viewport{device: dev, registry: reg}

	return e
}

func (e *Engine) Logger() *slog.Logger         { return e.logger }
func (e *Engine) Metrics() *metrics.Collector  { return e.metrics }
func (e *Engine) Device() *device.Device       { return e.device }
func (e *Engine) Registry() *registry.Registry { return e.registry }
func (e *Engine) Queue() *RenderQueue          { return e.queue }

// Register registers rules, hot reloading every mounted component.
func (e *Engine) Register(opts registry.Options) error {
	if err := e.registry.Register(opts); err != nil {
		return err
	}

	e.metrics.Registration()
	return nil
}

// RegisterFunction adds or replaces a runtime function. Components pick it
// up the next time they evaluate.
func (e *Engine) RegisterFunction(name string, fn Function) {
	e.functions[name] = fn
}

func (e *Engine) function(name string) (Function, bool) {
	fn, ok := e.functions[name]
	return fn, ok
}

// NewComponent creates the state of a component rendered as base, with one
// PropState per config.
func (e *Engine) NewComponent(base string, configs ...Config) *ComponentState {
	if len(configs) == 0 {
		configs = []Config{StyleConfig}
	}

	c := &ComponentState{
		engine: e,
		name:   base,
		owner:  sig.NewOwner(),
	}

	c.owner.Run(func() error {
		for _, config := range configs {
			c.states = append(c.states, newPropState(c, config))
		}
		return nil
	})

	e.logger.Debug("component created", "component", base, "props", len(configs))

	return c
}

// Flush rerenders every queued component through render, parents first.
func (e *Engine) Flush(render func(*ComponentState)) {
	e.queue.Flush(render)
}

// Reset clears registered rules, custom functions and device metrics, and
// drops renders queued before the reset. Mounted components are not
// unmounted: they reevaluate against the empty registry and are queued for
// a render.
func (e *Engine) Reset() {
	e.queue.Clear()
	e.functions = builtinFunctions()

	sig.NewBatch(func() {
		e.registry.Reset()
		e.device.Reset(e.initial)
	})
}

// viewport is what media queries see: the device plus the color scheme
// setting of the registry.
type viewport struct {
	device   *device.Device
	registry *registry.Registry
}

func (v viewport) Width(e *sig.Effect) float64      { return v.device.Width(e) }
func (v viewport) Height(e *sig.Effect) float64     { return v.device.Height(e) }
func (v viewport) PixelRatio(e *sig.Effect) float64 { return v.device.PixelRatio(e) }
func (v viewport) IsDark(e *sig.Effect) bool        { return v.registry.IsDark(e) }

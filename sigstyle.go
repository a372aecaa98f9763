// Package sigstyle resolves compiled style rules into concrete styles for the
// components of a retained UI tree, and keeps them current as interaction,
// layout, variables and containers change.
//
// Resolution is driven by signals: a component only reevaluates when a value
// it actually read changes, and only rerenders when its resolved props differ.
//
//	eng, err := sigstyle.New(sigstyle.WithRulesFile("styles.yaml"))
//	button := eng.NewComponent("Pressable")
//	res := button.Interop(props, ref, parentEnv)
package sigstyle

import (
	"log/slog"

	"github.com/AnatoleLucet/sigstyle/device"
	"github.com/AnatoleLucet/sigstyle/internal/logging"
	"github.com/AnatoleLucet/sigstyle/interop"
	"github.com/AnatoleLucet/sigstyle/metrics"
	"github.com/AnatoleLucet/sigstyle/registry"
)

type options struct {
	logger    *slog.Logger
	metrics   *metrics.Collector
	device    device.Metrics
	rules     []registry.Options
	files     []string
	functions map[string]interop.Function
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records resolution activity into m.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

// WithDevice sets the initial device metrics, DefaultMetrics otherwise.
func WithDevice(m device.Metrics) Option {
	return func(o *options) { o.device = m }
}

// WithRules registers rules once the engine is created. Rules are
// registered in option order.
func WithRules(rules registry.Options) Option {
	return func(o *options) { o.rules = append(o.rules, rules) }
}

// WithRulesFile registers the rules of a YAML file.
func WithRulesFile(path string) Option {
	return func(o *options) { o.files = append(o.files, path) }
}

// WithFunction adds or replaces a runtime function.
func WithFunction(name string, fn interop.Function) Option {
	return func(o *options) { o.functions[name] = fn }
}

// New creates an engine with its own device and registry.
func New(opts ...Option) (*interop.Engine, error) {
	o := &options{
		logger:    logging.NewNop(),
		device:    device.DefaultMetrics,
		functions: map[string]interop.Function{},
	}
	for _, opt := range opts {
		opt(o)
	}

	dev := device.New(o.device)
	reg := registry.New(dev, o.logger)

	engineOpts := []interop.Option{
		interop.WithLogger(o.logger),
		interop.WithMetrics(o.metrics),
	}
	for name, fn := range o.functions {
		engineOpts = append(engineOpts, interop.WithFunction(name, fn))
	}

	eng := interop.New(reg, dev, engineOpts...)

	for _, path := range o.files {
		rules, err := registry.LoadFile(path)
		if err != nil {
			return nil, err
		}
		o.rules = append(o.rules, rules)
	}

	for _, rules := range o.rules {
		if err := eng.Register(rules); err != nil {
			return nil, err
		}
	}

	return eng, nil
}

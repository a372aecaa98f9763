// Package metrics exposes resolution activity as Prometheus collectors.
//
// Every method is safe on a nil *Collector, so the engine can record
// unconditionally whether or not metrics were configured.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	Computations        prometheus.Counter
	Rerenders           prometheus.Counter
	SuppressedRerenders prometheus.Counter
	Warnings            *prometheus.CounterVec
	Registrations       prometheus.Counter
	ResolveDuration     prometheus.Histogram
}

func New() *Collector {
	return &Collector{
		Computations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sigstyle_propstate_computations_total",
			Help: "Total number of prop state evaluations",
		}),
		Rerenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sigstyle_rerenders_total",
			Help: "Total number of component rerenders requested by a style change",
		}),
		SuppressedRerenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sigstyle_rerenders_suppressed_total",
			Help: "Total number of evaluations that changed nothing and skipped the rerender",
		}),
		Warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigstyle_extraction_warnings_total",
				Help: "Total number of style warnings raised during resolution",
			},
			[]string{"type"},
		),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sigstyle_registrations_total",
			Help: "Total number of successful rule registrations",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sigstyle_resolve_duration_seconds",
			Help:    "Duration of prop state evaluations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 8),
		}),
	}
}

// Register adds every collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.Computations,
		c.Rerenders,
		c.SuppressedRerenders,
		c.Warnings,
		c.Registrations,
		c.ResolveDuration,
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}

	return nil
}

// Computation records one evaluation that started at start.
func (c *Collector) Computation(start time.Time) {
	if c == nil {
		return
	}
	c.Computations.Inc()
	c.ResolveDuration.Observe(time.Since(start).Seconds())
}

func (c *Collector) Rerender() {
	if c == nil {
		return
	}
	c.Rerenders.Inc()
}

func (c *Collector) Suppressed() {
	if c == nil {
		return
	}
	c.SuppressedRerenders.Inc()
}

func (c *Collector) Warning(typ string) {
	if c == nil {
		return
	}
	c.Warnings.WithLabelValues(typ).Inc()
}

func (c *Collector) Registration() {
	if c == nil {
		return
	}
	c.Registrations.Inc()
}

// Package observability exports simulation tick metrics to Prometheus.
package observability

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"powder/internal/engine"
	"powder/internal/registry"
)

// TickCollector bundles the per-tick Prometheus metrics of a powder world.
// It satisfies powder.Observer.
type TickCollector struct {
	gatherer prometheus.Gatherer

	Ticks        prometheus.Counter
	TickDuration prometheus.Histogram
	Particles    prometheus.Gauge
	Moves        prometheus.Counter
	Reactions    *prometheus.CounterVec
	Decays       prometheus.Counter
}

// NewTickCollector registers the metrics against reg, defaulting to the
// global Prometheus registry when nil. Re-registering against the same
// registry reuses the existing collectors.
func NewTickCollector(reg prometheus.Registerer) (*TickCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "powder_ticks_total",
		Help: "Completed simulation ticks.",
	}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "powder_tick_duration_seconds",
		Help:    "Wall time of one update pass.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.016, 0.033},
	}))
	if err != nil {
		return nil, err
	}
	particles, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "powder_particles",
		Help: "Particles in the committed frame.",
	}))
	if err != nil {
		return nil, err
	}
	moves, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "powder_moves_total",
		Help: "Particle relocations, including displacement swaps.",
	}))
	if err != nil {
		return nil, err
	}
	reactions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "powder_reactions_total",
		Help: "Applied relationship rules, labeled by kind.",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}
	decays, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "powder_decays_total",
		Help: "Gas particles erased after running out of life.",
	}))
	if err != nil {
		return nil, err
	}

	return &TickCollector{
		gatherer:     gatherer,
		Ticks:        ticks,
		TickDuration: duration,
		Particles:    particles,
		Moves:        moves,
		Reactions:    reactions,
		Decays:       decays,
	}, nil
}

// ObserveTick records one tick summary.
func (c *TickCollector) ObserveTick(s engine.Stats) {
	if c == nil {
		return
	}
	c.Ticks.Inc()
	c.TickDuration.Observe(s.Duration.Seconds())
	c.Particles.Set(float64(s.Live))
	c.Moves.Add(float64(s.Moved))
	c.Decays.Add(float64(s.Decayed))
	for _, kind := range [...]registry.RelationshipKind{registry.Merge, registry.Consume, registry.Paint} {
		if n := s.Reactions[kind]; n > 0 {
			c.Reactions.WithLabelValues(kind.String()).Add(float64(n))
		}
	}
}

// Handler serves the gatherer the collector was registered against.
func (c *TickCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register metric: %w", err)
	}
	return c, nil
}

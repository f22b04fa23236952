// Package metrics exports traversal and board activity as prometheus series
// by listening on the event bus
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/parameter"
)

const namespace = "knot_runner"

// Collector is an event handler that updates prometheus series
type Collector struct {
	events     *prometheus.CounterVec
	knotEnters prometheus.Counter
	landings   prometheus.Counter
	junctions  prometheus.Counter
	selections prometheus.Counter
	rejected   *prometheus.CounterVec
	rolls      prometheus.Histogram
	stepsLeft  prometheus.Gauge
	paused     prometheus.Gauge
	coins      prometheus.Gauge
	stars      prometheus.Gauge
}

// New registers the collector's series on reg
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events dispatched on the bus by type",
		}, []string{"type"}),
		knotEnters: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "traversal",
			Name:      "knot_enters_total",
			Help:      "Knot arrivals, junctions included",
		}),
		landings: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "traversal",
			Name:      "landings_total",
			Help:      "Completed step sequences",
		}),
		junctions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "traversal",
			Name:      "junctions_total",
			Help:      "Junction stops awaiting a branch choice",
		}),
		selections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "traversal",
			Name:      "junction_selections_total",
			Help:      "Junction highlight changes, entry default included",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "traversal",
			Name:      "animate_rejected_total",
			Help:      "Refused Animate requests by reason",
		}, []string{"reason"}),
		rolls: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "roll_value",
			Help:      "Distribution of dice results",
			Buckets:   prometheus.LinearBuckets(parameter.DiceMin, 1, parameter.DiceMax-parameter.DiceMin+1),
		}),
		stepsLeft: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "traversal",
			Name:      "steps_remaining",
			Help:      "Steps left in the active sequence at the last arrival",
		}),
		paused: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "traversal",
			Name:      "paused",
			Help:      "1 while the pause gate holds the piece",
		}),
		coins: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "coins",
			Help:      "Current coin count",
		}),
		stars: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "stars",
			Help:      "Current star count",
		}),
	}
}

func (c *Collector) EventTypes() []event.EventType {
	return event.AllTypes()
}

func (c *Collector) HandleEvent(ev event.GameEvent) {
	c.events.WithLabelValues(ev.Type.String()).Inc()

	switch p := ev.Payload.(type) {
	case *event.KnotPayload:
		c.stepsLeft.Set(float64(p.Remaining))
		switch ev.Type {
		case event.EventKnotEnter:
			c.knotEnters.Inc()
		case event.EventKnotLand:
			c.landings.Inc()
		}
	case *event.JunctionPayload:
		if ev.Type == event.EventJunctionEnter {
			c.junctions.Inc()
		}
	case *event.SelectionPayload:
		c.selections.Inc()
	case *event.RejectPayload:
		c.rejected.WithLabelValues(p.Reason).Inc()
	case *event.RollPayload:
		c.rolls.Observe(float64(p.Value))
	case *event.PausePayload:
		if p.Paused {
			c.paused.Set(1)
		} else {
			c.paused.Set(0)
		}
	case *event.StatsPayload:
		c.coins.Set(float64(p.Coins))
		c.stars.Set(float64(p.Stars))
	}
}

// Handler serves the registry in the prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

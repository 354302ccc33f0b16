// Package metrics collects and exposes engine counters for Prometheus.
//
// Everything here is optional instrumentation: the layout engine works
// with a nil *Collector, and nothing in the pure computation path
// depends on a metric being recorded.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Drop reasons used as the label on the dropped-items counter.
const (
	ReasonBadDate      = "bad_date"
	ReasonInvalidRange = "invalid_range"
)

// Collector holds the engine's Prometheus instruments.
type Collector struct {
	layoutsComputed prometheus.Counter
	layoutDuration  prometheus.Histogram
	itemsDropped    *prometheus.CounterVec
	guardTrips      prometheus.Counter
	memoHits        prometheus.Counter
	memoMisses      prometheus.Counter

	lastRows    prometheus.Gauge
	lastPeriods prometheus.Gauge
}

// NewCollector creates and registers the engine metrics on the given
// registerer (nil means the default registry).
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		layoutsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeline_layouts_computed_total",
			Help: "Total number of full layout recomputations",
		}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timeline_layout_duration_seconds",
			Help:    "Wall time of a single layout recomputation",
			Buckets: prometheus.DefBuckets,
		}),
		itemsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timeline_items_dropped_total",
			Help: "Item records excluded during decoding",
		}, []string{"reason"}),
		guardTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeline_period_guard_trips_total",
			Help: "Times the period generator hit its iteration cap",
		}),
		memoHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeline_memo_hits_total",
			Help: "Layout requests served from the memoized result",
		}),
		memoMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timeline_memo_misses_total",
			Help: "Layout requests that forced a recomputation",
		}),
		lastRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timeline_last_row_count",
			Help: "Row count of the most recent layout",
		}),
		lastPeriods: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timeline_last_period_count",
			Help: "Period count of the most recent layout",
		}),
	}

	reg.MustRegister(
		c.layoutsComputed,
		c.layoutDuration,
		c.itemsDropped,
		c.guardTrips,
		c.memoHits,
		c.memoMisses,
		c.lastRows,
		c.lastPeriods,
	)
	return c
}

// RecordLayout records one completed recomputation. Safe on nil.
func (c *Collector) RecordLayout(seconds float64, rows, periods int) {
	if c == nil {
		return
	}
	c.layoutsComputed.Inc()
	c.layoutDuration.Observe(seconds)
	c.lastRows.Set(float64(rows))
	c.lastPeriods.Set(float64(periods))
}

// RecordDropped records an excluded item record. Safe on nil.
func (c *Collector) RecordDropped(reason string) {
	if c == nil {
		return
	}
	c.itemsDropped.WithLabelValues(reason).Inc()
}

// RecordGuardTrip records a truncated period loop. Safe on nil.
func (c *Collector) RecordGuardTrip() {
	if c == nil {
		return
	}
	c.guardTrips.Inc()
}

// RecordMemo records a memo lookup outcome. Safe on nil.
func (c *Collector) RecordMemo(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.memoHits.Inc()
	} else {
		c.memoMisses.Inc()
	}
}

// StartServer exposes /metrics on the given port. Blocks.
func StartServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

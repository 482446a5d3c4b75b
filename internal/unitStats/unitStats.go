// Package unitstats counts catalog lookups, region switches and expression
// evaluations as Prometheus metrics
package unitstats

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ccunits "github.com/ClusterCockpit/cc-unit-engine/pkg/ccUnits"
)

const namespace = "cc_unit_engine"

type Stats struct {
	registry    *prometheus.Registry
	lookups     *prometheus.CounterVec
	switches    *prometheus.CounterVec
	region      *prometheus.GaugeVec
	evaluations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New creates the metrics in a registry of their own
func New() *Stats {
	s := &Stats{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_lookups_total",
			Help:      "Catalog lookups by result",
		}, []string{"result"}),
		switches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "region_switches_total",
			Help:      "Switches of the regional unit convention",
		}, []string{"region"}),
		region: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "region",
			Help:      "Active regional unit convention (1 for the active one)",
		}, []string{"region"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Expression evaluations by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating expressions",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	s.registry.MustRegister(s.lookups, s.switches, s.region, s.evaluations, s.duration)
	s.setRegion(ccunits.RegionUK)
	return s
}

func (s *Stats) setRegion(r ccunits.Region) {
	for _, x := range []ccunits.Region{ccunits.RegionUK, ccunits.RegionUS} {
		v := 0.0
		if x == r {
			v = 1.0
		}
		s.region.WithLabelValues(x.String()).Set(v)
	}
}

func (s *Stats) ObserveLookup(name string, found bool) {
	if found {
		s.lookups.WithLabelValues("found").Inc()
	} else {
		s.lookups.WithLabelValues("missing").Inc()
	}
}

func (s *Stats) ObserveRegion(r ccunits.Region) {
	s.switches.WithLabelValues(r.String()).Inc()
	s.setRegion(r)
}

func (s *Stats) ObserveEval(duration time.Duration, err error) {
	if err != nil {
		s.evaluations.WithLabelValues("error").Inc()
	} else {
		s.evaluations.WithLabelValues("ok").Inc()
	}
	s.duration.Observe(duration.Seconds())
}

func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (s *Stats) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

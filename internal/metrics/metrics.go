// Package metrics holds the Prometheus collectors exposed on /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipvoid_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shipvoid_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipvoid_http_panics_total",
		Help: "Handler panics recovered by route.",
	}, []string{"path"})

	LoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipvoid_loads_total",
		Help: "Reconciliation runs by outcome (ok or error).",
	}, []string{"outcome"})

	LoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shipvoid_load_duration_seconds",
		Help:    "Time to discover, parse and reconcile both extracts.",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	ContainersTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shipvoid_containers",
		Help: "Containers in the last successful result by source type.",
	}, []string{"source_type"})

	AtRiskContainers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipvoid_at_risk_containers",
		Help: "Containers not yet billed or inactive.",
	})

	PotentialCost = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipvoid_potential_cost",
		Help: "Summed cost of at-risk containers.",
	})

	TimelineMismatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipvoid_timeline_mismatches",
		Help: "History matches cleared in the last run because the label and creation dates differ.",
	})

	ParseWarnings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipvoid_parse_warnings",
		Help: "Values coerced to null in the last run.",
	})

	LastSuccessTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipvoid_last_success_timestamp_seconds",
		Help: "Unix time of the last successful run.",
	})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shipvoid_websocket_clients",
		Help: "Connected live update clients.",
	})
)

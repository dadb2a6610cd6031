// Package metrics exposes Prometheus instrumentation for the adder service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CircuitsAssembled counts adder circuits built, by caller
	// Labels: "job", "circuit"
	CircuitsAssembled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qadd_circuits_assembled_total",
		Help: "Total adder circuits assembled",
	}, []string{"source"})

	// CircuitGates observes the gate count of assembled circuits
	CircuitGates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qadd_circuit_gates",
		Help:    "Gates per assembled adder circuit",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600},
	})

	// JobsTotal counts addition jobs by final status
	// Labels: "completed", "failed"
	JobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qadd_jobs_total",
		Help: "Total addition jobs by final status",
	}, []string{"status"})

	// ExecutionDuration observes backend run time per backend
	ExecutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qadd_execution_duration_seconds",
		Help:    "Adder execution duration by backend",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
	}, []string{"backend"})

	// DecodeMismatches counts runs whose decoded sum differed from a + b
	DecodeMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qadd_decode_mismatches_total",
		Help: "Total runs whose most frequent outcome decoded to the wrong sum",
	})

	// HTTPRequests counts API requests by route and status code
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qadd_http_requests_total",
		Help: "Total HTTP requests by route and status code",
	}, []string{"route", "code"})
)

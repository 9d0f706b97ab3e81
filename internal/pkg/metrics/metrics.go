// Package metrics holds the prometheus collectors of the cluster backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "named_cluster"

var (
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Named cluster operations by operation and result.",
		},
		[]string{"operation", "result"},
	)

	DiagnosticTests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostic_tests_total",
			Help:      "Completed diagnostic tests by category and status.",
		},
		[]string{"category", "status"},
	)

	DriverInstalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "driver_installs_total",
			Help:      "Shim driver installs by result.",
		},
		[]string{"result"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		Operations,
		DiagnosticTests,
		DriverInstalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveOperation counts one operation outcome.
func ObserveOperation(operation string, ok bool) {
	Operations.WithLabelValues(operation, result(ok)).Inc()
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autotrack/internal/models"
)

const (
	resultChanged   = "changed"
	resultUnchanged = "unchanged"
	resultError     = "error"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	tasks     *prometheus.GaugeVec
	mutations *prometheus.CounterVec
}

// NewMetrics registers the autotrack collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "autotrack_tasks",
			Help: "Number of tasks by status",
		}, []string{"status"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autotrack_task_mutations_total",
			Help: "Number of task mutations by operation and result",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(m.tasks, m.mutations, collectors.NewGoCollector())
	return m
}

// SetCounters publishes the per-status task gauges.
func (m *Metrics) SetCounters(c models.Counters) {
	if m == nil {
		return
	}
	pending := c.Total - c.Completed - c.Running - c.Failed
	m.tasks.WithLabelValues(string(models.StatusPending)).Set(float64(pending))
	m.tasks.WithLabelValues(string(models.StatusRunning)).Set(float64(c.Running))
	m.tasks.WithLabelValues(string(models.StatusCompleted)).Set(float64(c.Completed))
	m.tasks.WithLabelValues(string(models.StatusFailed)).Set(float64(c.Failed))
}

// Mutation records one create, status or delete call.
func (m *Metrics) Mutation(operation string, changed bool, err error) {
	if m == nil {
		return
	}
	result := resultUnchanged
	switch {
	case err != nil:
		result = resultError
	case changed:
		result = resultChanged
	}
	m.mutations.WithLabelValues(operation, result).Inc()
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

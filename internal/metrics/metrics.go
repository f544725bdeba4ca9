// Package metrics exposes Prometheus counters for the cockpit tool surface.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cockpit"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the collectors of one server. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	saves        *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of MCP tool calls by tool and result",
			},
			[]string{"tool", "result"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_duration_seconds",
				Help:      "Time spent handling MCP tool calls, persistence included",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "saves_total",
				Help:      "Total number of cockpit saves by result",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		m.toolCalls,
		m.toolDuration,
		m.saves,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveTool records one tool call that started at start.
func (m *Metrics) ObserveTool(tool string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, result(err)).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

// ObserveSave records one persistence attempt.
func (m *Metrics) ObserveSave(err error) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(result(err)).Inc()
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// Package metrics collects the monitor's Prometheus metrics and
// serves them over the standard /metrics endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SensorReads       *prometheus.CounterVec
	CyclesCompleted   prometheus.Counter
	SensorsConnected  prometheus.Gauge
	LineRequests      *prometheus.CounterVec
	ReadingsPublished prometheus.Counter

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		SensorReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tempsentry",
				Subsystem: "poller",
				Name:      "sensor_reads_total",
				Help:      "Sensor conversions issued, by outcome",
			},
			[]string{"status"},
		),
		CyclesCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "tempsentry",
				Subsystem: "poller",
				Name:      "cycles_completed_total",
				Help:      "Full round-robin polling cycles completed",
			},
		),
		SensorsConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "tempsentry",
				Subsystem: "poller",
				Name:      "sensors_connected",
				Help:      "Sensors discovered at boot",
			},
		),
		LineRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tempsentry",
				Subsystem: "lineproto",
				Name:      "requests_total",
				Help:      "Line protocol requests, by outcome",
			},
			[]string{"status"},
		),
		ReadingsPublished: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "tempsentry",
				Subsystem: "telemetry",
				Name:      "readings_published_total",
				Help:      "Reading batches published to the broker",
			},
		),
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.SensorReads,
		m.CyclesCompleted,
		m.SensorsConnected,
		m.LineRequests,
		m.ReadingsPublished,
	)

	return m
}

func (m *Metrics) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

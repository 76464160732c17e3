// Package metric exposes the station's Prometheus metrics.
package metric

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric groups the collectors of one station. Every Metric owns its registry,
// so several instances can live in one process.
type Metric struct {
	registry      *prometheus.Registry
	serviceTiming *prometheus.SummaryVec
	errorCounter  *prometheus.CounterVec
	measurements  prometheus.Counter
	temperature   prometheus.Gauge
	humidity      prometheus.Gauge
	streamClients prometheus.Gauge
}

// New creates the collectors and registers them.
func New(appID string) *Metric {
	r := strings.NewReplacer(
		"-", "_",
		" ", "_")
	serviceName := r.Replace(appID)

	m := &Metric{
		registry: prometheus.NewRegistry(),
		serviceTiming: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "service_timing",
				Help: fmt.Sprintf("%s timing", serviceName),
			},
			[]string{"route"},
		),
		errorCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "error_counter",
				Help: fmt.Sprintf("%s error counter", serviceName),
			},
			[]string{"error"},
		),
		measurements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "measurements_total",
			Help: "Number of readings taken from the sensor.",
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reading_temperature",
			Help: "Latest measured temperature.",
		}),
		humidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reading_humidity",
			Help: "Latest measured humidity.",
		}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stream_clients",
			Help: "Websocket clients currently connected.",
		}),
	}

	m.registry.MustRegister(
		m.serviceTiming,
		m.errorCounter,
		m.measurements,
		m.temperature,
		m.humidity,
		m.streamClients,
		collectors.NewGoCollector(),
	)

	return m
}

// ErrorCounter increments the error counter for label.
func (m *Metric) ErrorCounter(label string) {
	m.errorCounter.
		WithLabelValues(label).
		Inc()
}

// Timing observes the time elapsed since start.
func (m *Metric) Timing(start time.Time, label string) {
	m.serviceTiming.
		WithLabelValues(label).
		Observe(time.Since(start).Seconds())
}

// Measured records a new reading.
func (m *Metric) Measured(temp, hyg float64) {
	m.measurements.Inc()
	m.temperature.Set(temp)
	m.humidity.Set(hyg)
}

// StreamClients sets the number of connected websocket clients.
func (m *Metric) StreamClients(n int) {
	m.streamClients.Set(float64(n))
}

// TimeTracker is a route middleware that observes handler latency.
func (m *Metric) TimeTracker(next http.HandlerFunc, label string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		m.Timing(start, label)
	}
}

// HandlerHTTP serves the registry in the Prometheus exposition format.
func (m *Metric) HandlerHTTP() http.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}
}

// Gatherer exposes the registry, mostly for tests.
func (m *Metric) Gatherer() prometheus.Gatherer {
	return m.registry
}

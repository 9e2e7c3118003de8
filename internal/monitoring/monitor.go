package monitoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor records HTTP request metrics for either side of the /foods API.
// A nil *Monitor is valid and records nothing.
type Monitor struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	startTime time.Time
}

// NewMonitor creates a monitor and registers its collectors. The subsystem
// separates client metrics ("client") from fixture server metrics ("server").
func NewMonitor(reg prometheus.Registerer, subsystem string) (*Monitor, error) {
	m := &Monitor{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gorestaurant",
				Subsystem: subsystem,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status class",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gorestaurant",
				Subsystem: subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		startTime: time.Now(),
	}

	for _, c := range []prometheus.Collector{m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveRequest records one finished request. A status of 0 means the
// request never got a response.
func (m *Monitor) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, StatusClass(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Uptime returns how long the monitor has been running
func (m *Monitor) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}

// StatusClass maps a status code to its label, e.g. 404 -> "4xx"
func StatusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}

// RouteOf collapses numeric path segments so /foods/12 and /foods/13 share
// the /foods/:id label.
func RouteOf(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if _, err := strconv.ParseUint(s, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}

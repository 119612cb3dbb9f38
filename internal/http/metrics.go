// Metric definitions for the portal API. Registered on the default
// Prometheus registry at package load; /metrics serves them.
package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "callsal"

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled, labelled by method, path, and status.",
	},
	[]string{"method", "path", "status"},
)

var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

var bookingsConfirmedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "bookings_confirmed_total",
		Help:      "Total bookings confirmed through the API.",
	},
)

var chatFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "chat_fallbacks_total",
		Help:      "Total chat replies served from the fallback message.",
	},
)

// Metrics records request counts and latency per route.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}

			requestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

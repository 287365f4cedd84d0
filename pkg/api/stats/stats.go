package stats

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	PlanOutcomeFound       = "found"
	PlanOutcomeUnreachable = "unreachable"
	PlanOutcomeError       = "error"
)

var (
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "railrouter_http_request_duration_seconds",
		Help:    "Time taken to serve API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	planCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "railrouter_plans_total",
		Help: "Route plans served by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(requestDuration, planCount)
}

// NewMetrics records the duration of every request against its route pattern
func NewMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fiberError, ok := err.(*fiber.Error); ok {
			status = fiberError.Code
		}

		requestDuration.With(prometheus.Labels{
			"method": c.Method(),
			"route":  c.Route().Path,
			"status": strconv.Itoa(status),
		}).Observe(time.Since(startTime).Seconds())

		return err
	}
}

func RecordPlan(outcome string) {
	planCount.With(prometheus.Labels{"outcome": outcome}).Inc()
}

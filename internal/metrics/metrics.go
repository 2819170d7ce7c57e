package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// RowsIngested yüklenen dosyalardan okunan satırlar (kind: product|order_line)
	RowsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pazaryeri_rows_ingested_total",
			Help: "Rows read from uploaded spreadsheets",
		},
		[]string{"platform", "kind"},
	)

	StoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pazaryeri_store_mutations_total",
			Help: "Record store mutations by operation",
		},
		[]string{"platform", "operation"},
	)

	AggregationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pazaryeri_aggregation_duration_seconds",
			Help:    "Time spent aggregating order lines into orders",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"platform"},
	)
)

var registerOnce sync.Once

// InitMetrics koleksiyonları varsayılan registry'e kaydeder, birden fazla çağrılabilir
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HttpRequestsTotal, HttpRequestDuration, RowsIngested, StoreMutations, AggregationDuration)
	})
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		path := "undefined"
		if r := c.Route(); r != nil && r.Path != "" {
			path = r.Path
		}

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		HttpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		HttpRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
		return err
	}
}

// ObserveAggregation süre ölçümünü başlatır, dönen fonksiyon iş bitince çağrılır
func ObserveAggregation(platform string) func() {
	start := time.Now()
	return func() {
		AggregationDuration.WithLabelValues(platform).Observe(time.Since(start).Seconds())
	}
}

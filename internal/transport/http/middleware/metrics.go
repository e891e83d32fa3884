package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	loginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "shop_logins_total", Help: "Login attempts by result"},
		[]string{"result"},
	)
	sessionRejects = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "shop_session_rejects_total", Help: "Mutations refused for a missing or invalid session"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency, loginTotal, sessionRejects) }

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpReqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ObserveLogin counts a login attempt; result is "ok", "rejected" or "error".
func ObserveLogin(result string) { loginTotal.WithLabelValues(result).Inc() }

func MetricsHandler() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }

package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimate_http_requests_total",
			Help: "Total number of HTTP requests processed by the uniMate service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unimate_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	guardDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimate_guard_decisions_total",
			Help: "Route guard decisions by outcome.",
		},
		[]string{"outcome"},
	)
	conversationFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "unimate_conversation_fallbacks_total",
			Help: "Conversation list reads answered from the fallback dataset.",
		},
	)
	lookupFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimate_lookup_failures_total",
			Help: "Failed calls to public lookup APIs.",
		},
		[]string{"client"},
	)
	rateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "unimate_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		},
	)
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "unimate_ws_active_connections",
			Help: "Number of active websocket connections.",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unimate_ws_events_total",
			Help: "Total number of websocket events.",
		},
		[]string{"event"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "unimate_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		guardDecisionsTotal,
		conversationFallbacksTotal,
		lookupFailuresTotal,
		rateLimitedTotal,
		wsActiveConnections,
		wsEventsTotal,
		amqpPublishErrorsTotal,
	)
}

func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncGuardDecision(outcome string) {
	guardDecisionsTotal.WithLabelValues(outcome).Inc()
}

func IncConversationFallback() {
	conversationFallbacksTotal.Inc()
}

func IncLookupFailure(client string) {
	lookupFailuresTotal.WithLabelValues(client).Inc()
}

func IncRateLimited() {
	rateLimitedTotal.Inc()
}

func IncWSActive() {
	wsActiveConnections.Inc()
}

func DecWSActive() {
	wsActiveConnections.Dec()
}

func IncWSEvent(event string) {
	wsEventsTotal.WithLabelValues(event).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}

package interview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interview_requests_total",
		Help: "API requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	rateLimitDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interview_rate_limit_denials_total",
		Help: "Requests denied by the rate limiter.",
	}, []string{"operation"})

	aiCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "interview_ai_call_seconds",
		Help:    "Outbound AI completion latency.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"provider", "operation"})
)
